package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/logger"

	"github.com/gin-gonic/gin"
)

// page renders an HTML view, or the payload itself for JSON clients
func page(c *gin.Context, status int, name string, payload any, data gin.H) {
	if middleware.WantsJSON(c) {
		c.JSON(status, payload)
		return
	}
	c.HTML(status, name, withCommon(c, data))
}

// formPage re-renders a form with its field errors. HTML forms come back
// with 200 like any page; JSON clients get a 400.
func formPage(c *gin.Context, name string, errs map[string]string, data gin.H) {
	if errs != nil {
		data["errors"] = errs
	}
	if middleware.WantsJSON(c) {
		status := http.StatusOK
		if len(errs) > 0 {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"errors": errs})
		return
	}
	c.HTML(http.StatusOK, name, withCommon(c, data))
}

// done finishes a successful POST: redirect for browsers, payload for JSON clients
func done(c *gin.Context, location string, status int, payload any) {
	if middleware.WantsJSON(c) {
		if payload == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(status, payload)
		return
	}
	c.Redirect(http.StatusFound, location)
}

func withCommon(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if user := middleware.CurrentUser(c); user != nil {
		data["user"] = user
	}
	data["csrf_token"] = middleware.CSRFTokenFrom(c)
	return data
}

func errorPage(c *gin.Context, status int, message string) {
	if middleware.WantsJSON(c) {
		c.AbortWithStatusJSON(status, gin.H{"error": message})
		return
	}
	c.HTML(status, "error.html", withCommon(c, gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	}))
	c.Abort()
}

// handleError maps service errors onto responses
func handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrShelfNotFound), errors.Is(err, service.ErrReviewNotFound):
		errorPage(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		errorPage(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrLikeConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, service.ErrUnauthenticated):
		c.Redirect(http.StatusFound, middleware.LoginURL(c.Request.URL.RequestURI()))
		c.Abort()
	case errors.As(err, &verr):
		errorPage(c, http.StatusBadRequest, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		_ = c.Error(err)
		errorPage(c, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses an integer path parameter. Anything else is a missing page.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorPage(c, http.StatusNotFound, "page not found")
		return 0, false
	}
	return id, true
}
