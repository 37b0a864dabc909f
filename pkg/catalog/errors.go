package catalog

import "errors"

var (
	// ErrFeedUnreachable is returned when the feed endpoint cannot be reached
	ErrFeedUnreachable = errors.New("catalog feed unreachable")

	// ErrFeedUnavailable is returned when the feed responds with a non-2xx status
	ErrFeedUnavailable = errors.New("catalog feed unavailable")

	// ErrMalformedFeed is returned when the feed body is not a product array
	ErrMalformedFeed = errors.New("malformed catalog feed")
)
