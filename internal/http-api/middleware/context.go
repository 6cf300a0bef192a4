package middleware

import (
	"net/url"
	"strings"

	"bookshelf/internal/http-api/models"

	"github.com/gin-gonic/gin"
)

// Keys set on the gin context by the middleware in this package
const (
	ContextUserKey      = "user"
	ContextUserIDKey    = "userID"
	ContextRequestIDKey = "requestID"
	ContextCSRFKey      = "csrfToken"
)

const LoginPath = "/accounts/login/"

// CurrentUser returns the authenticated user, or nil for anonymous requests
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentUserID returns the authenticated user's id, or "" for anonymous requests
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}

func CSRFTokenFrom(c *gin.Context) string {
	return c.GetString(ContextCSRFKey)
}

// WantsJSON reports whether the client asked for a JSON response
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// LoginURL builds the login redirect carrying the page to come back to
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}
