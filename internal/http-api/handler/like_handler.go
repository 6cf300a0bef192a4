package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/logger"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
	}
}

// RegisterRoutes registers the like toggle on a group that already requires login
func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/toggle_like/", h.Toggle)
}

// Toggle flips the current user's like on a review. Always answers JSON.
// POST /toggle_like/ review_id=<id>
func (h *LikeHandler) Toggle(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.PostForm("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "review_id must be an integer"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.likeService.Toggle(ctx, middleware.CurrentUserID(c), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrLikeConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
		default:
			logger.FromContext(c.Request.Context()).Error("toggle like failed", "review_id", reviewID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
