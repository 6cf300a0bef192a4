package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookshelf/internal/logger"
	"bookshelf/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	presignExpiry  = 15 * time.Minute
	requestTimeout = 5 * time.Second
)

type MediaHandler struct {
	store storage.Store
}

func NewMediaHandler(store storage.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/media/*key", h.Get)
	router.HEAD("/media/*key", h.Get)
}

// Get serves a stored thumbnail. Object stores hand out a presigned URL instead.
// GET /media/*key
func (h *MediaHandler) Get(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	if presigner, ok := h.store.(storage.Presigner); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		url, err := presigner.PresignGet(ctx, key, presignExpiry)
		if err != nil {
			h.fail(c, key, err)
			return
		}
		c.Redirect(http.StatusFound, url)
		return
	}

	rc, info, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		h.fail(c, key, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}

func (h *MediaHandler) fail(c *gin.Context, key string, err error) {
	if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
		c.String(http.StatusNotFound, "not found")
		return
	}
	logger.FromContext(c.Request.Context()).Error("media lookup failed", "key", key, "error", err)
	c.String(http.StatusInternalServerError, "internal server error")
}
