package errors

import (
	"errors"
	"strings"

	"github.com/hjyoon/storefront-backend/pkg/catalog"
)

// ErrorInfo carries a code and a user facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts an error into a code and a message safe to show.
// Sensitive detail stays out of the message; the caller logs the raw error.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred",
		}
	}

	// Feed client errors
	if errors.Is(err, catalog.ErrFeedUnreachable) ||
		errors.Is(err, catalog.ErrFeedUnavailable) ||
		errors.Is(err, catalog.ErrMalformedFeed) {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "The product feed could not be reached. Please try again later",
		}
	}

	// Network errors surfaced without a sentinel
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "context deadline exceeded") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service could not be reached. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "cart") {
		return "Something went wrong updating the cart. Please try again"
	}
	if strings.Contains(contextLower, "catalog") || strings.Contains(contextLower, "product") {
		return "Something went wrong loading products. Please try again"
	}

	return "An unexpected error occurred. Please try again later"
}
