package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/http-api/validation"
	"bookshelf/internal/logger"
	"bookshelf/internal/session"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the session cookie
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// RegisterRoutes registers the account routes. loginLimit throttles login attempts.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	accounts := router.Group("/accounts")
	{
		accounts.GET("/signup/", h.SignupForm)
		accounts.POST("/signup/", h.Signup)
		accounts.GET("/login/", h.LoginForm)
		accounts.POST("/login/", loginLimit, h.Login)

		accounts.GET("/logout/", middleware.RequireLogin(), h.Logout)
		accounts.POST("/logout/", middleware.RequireLogin(), h.Logout)
	}
}

// SignupForm renders the empty signup form
// GET /accounts/signup/
func (h *AuthHandler) SignupForm(c *gin.Context) {
	formPage(c, "signup.html", nil, gin.H{"title": "Sign up", "form": dto.SignupForm{}})
}

// Signup creates the account and logs it in
// POST /accounts/signup/
func (h *AuthHandler) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		formPage(c, "signup.html", validation.FieldErrors(err), gin.H{"title": "Sign up", "form": form})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, token, err := h.authService.SignUp(ctx, form)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			formPage(c, "signup.html", verr.Fields, gin.H{"title": "Sign up", "form": form})
		case errors.Is(err, service.ErrNameInUse):
			formPage(c, "signup.html", map[string]string{"username": err.Error()}, gin.H{"title": "Sign up", "form": form})
		default:
			handleError(c, err)
		}
		return
	}

	h.setSessionCookie(c, token)
	logger.FromContext(c.Request.Context()).Info("user signed up", "user_id", user.ID)
	done(c, "/", http.StatusCreated, user)
}

// LoginForm renders the login form, carrying ?next= along
// GET /accounts/login/
func (h *AuthHandler) LoginForm(c *gin.Context) {
	formPage(c, "login.html", nil, gin.H{
		"title": "Log in",
		"form":  dto.LoginForm{Next: c.Query("next")},
	})
}

// Login checks the credentials and opens a session
// POST /accounts/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		formPage(c, "login.html", validation.FieldErrors(err), gin.H{"title": "Log in", "form": form})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, token, err := h.authService.Login(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			form.Password = ""
			formPage(c, "login.html", map[string]string{
				validation.NonFieldErrors: "Please enter a correct username and password. Note that both fields may be case-sensitive.",
			}, gin.H{"title": "Log in", "form": form})
			return
		}
		handleError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	done(c, SafeNext(form.Next), http.StatusOK, user)
}

// Logout ends the session
// GET|POST /accounts/logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(session.CookieName)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.authService.Logout(ctx, token); err != nil {
		// the cookie is cleared below either way
		logger.FromContext(c.Request.Context()).Warn("logout failed", "error", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.cookie.Secure, true)
	done(c, middleware.LoginPath, http.StatusOK, nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

// SafeNext only lets local absolute paths through as a redirect target
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
