package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewSessionMiddleware("cart_session", 24*time.Hour).Attach())
	router.GET("/cart", func(c *gin.Context) {
		sessionID, ok := GetSessionID(c)
		c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "ok": ok})
	})

	return router
}

func issuedCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "cart_session" {
			return cookie
		}
	}
	return nil
}

func TestSessionMiddleware_IssuesCookieOnFirstContact(t *testing.T) {
	router := setupSessionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookie := issuedCookie(t, w)
	require.NotNil(t, cookie)
	assert.NoError(t, uuid.Validate(cookie.Value))
	assert.True(t, cookie.HttpOnly)
}

func TestSessionMiddleware_ReusesValidCookie(t *testing.T) {
	router := setupSessionTest(t)

	sessionID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: sessionID})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Nil(t, issuedCookie(t, w))
	assert.Contains(t, w.Body.String(), sessionID)
}

func TestSessionMiddleware_ReplacesMalformedCookie(t *testing.T) {
	router := setupSessionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookie := issuedCookie(t, w)
	require.NotNil(t, cookie)
	assert.NoError(t, uuid.Validate(cookie.Value))
	assert.NotEqual(t, "not-a-uuid", cookie.Value)
}
