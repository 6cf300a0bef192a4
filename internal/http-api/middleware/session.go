package middleware

import (
	"errors"
	"net/http"

	"bookshelf/internal/http-api/service"
	"bookshelf/internal/logger"
	"bookshelf/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionAuth resolves the session cookie to a user when one is present.
// Anonymous requests pass through untouched; RequireLogin guards the routes
// that need a user.
func SessionAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.ID)
		case errors.Is(err, service.ErrUnauthenticated):
			// stale or revoked cookie, treat as anonymous
		default:
			logger.FromContext(c.Request.Context()).Warn("session lookup failed", "error", err)
		}

		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
