package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CSRFOptions struct {
	CookieName     string // Default: "csrftoken"
	FieldName      string // Default: "csrfmiddlewaretoken"
	HeaderName     string // Default: "X-CSRFToken"
	CookiePath     string
	CookieMaxAge   int
	CookieSecure   bool
	CookieSameSite http.SameSite
}

func DefaultCSRFOptions() CSRFOptions {
	return CSRFOptions{
		CookieName:     "csrftoken",
		FieldName:      "csrfmiddlewaretoken",
		HeaderName:     "X-CSRFToken",
		CookiePath:     "/",
		CookieMaxAge:   365 * 24 * 60 * 60,
		CookieSecure:   false,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// CSRF implements the double submit cookie check. Every response carries the
// token cookie; unsafe methods must echo it in the form field or the header.
func CSRF(opts CSRFOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(opts.CookieName)
		if err != nil || token == "" {
			token = generateCSRFToken()
			c.SetSameSite(opts.CookieSameSite)
			c.SetCookie(opts.CookieName, token, opts.CookieMaxAge, opts.CookiePath, "", opts.CookieSecure, true)
		}
		c.Set(ContextCSRFKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		provided := c.GetHeader(opts.HeaderName)
		if provided == "" {
			provided = c.PostForm(opts.FieldName)
		}

		if !isValidCSRFToken(token, provided) {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing or incorrect"})
				return
			}
			c.String(http.StatusForbidden, "CSRF verification failed. Request aborted.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func generateCSRFToken() string {
	var b [32]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func isValidCSRFToken(expected, provided string) bool {
	if expected == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
