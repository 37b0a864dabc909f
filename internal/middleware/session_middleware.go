package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

const sessionContextKey = "session_id"

// SessionMiddleware identifies the anonymous browsing session carrying the
// cart. A uuid cookie is issued on first contact; nothing is persisted, so
// the cart's lifetime is the session.
type SessionMiddleware struct {
	cookieName string
	maxAge     time.Duration
}

func NewSessionMiddleware(cookieName string, maxAge time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
		maxAge:     maxAge,
	}
}

// Attach reads the session cookie, issuing a fresh id when the cookie is
// absent or not a uuid, and stores the id in the request context.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(m.cookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetCookie(m.cookieName, sessionID, int(m.maxAge.Seconds()), "/", "", false, true)
			logger.Debug("Issued new cart session", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session id from gin context.
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(sessionContextKey)
	return sessionID, sessionID != ""
}
