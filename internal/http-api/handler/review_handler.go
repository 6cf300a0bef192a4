package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/http-api/validation"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers review routes on a group that already requires login.
// The create route shares the shelf's :id segment.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/:id/review/", h.CreateForm)
	router.POST("/:id/review/", h.Create)

	reviews := router.Group("/review/:id")
	{
		reviews.GET("/update/", h.UpdateForm)
		reviews.POST("/update/", h.Update)
		reviews.GET("/delete/", h.DeleteConfirm)
		reviews.POST("/delete/", h.Delete)
	}
}

// CreateForm renders the review form for a shelf
// GET /:book_id/review/
func (h *ReviewHandler) CreateForm(c *gin.Context) {
	shelf, ok := h.loadShelf(c)
	if !ok {
		return
	}
	formPage(c, "review_form.html", nil, gin.H{"title": "Write a review", "shelf": shelf, "form": dto.ReviewForm{}})
}

// Create posts a review on the shelf
// POST /:book_id/review/
func (h *ReviewHandler) Create(c *gin.Context) {
	shelf, ok := h.loadShelf(c)
	if !ok {
		return
	}

	data := gin.H{"title": "Write a review", "shelf": shelf}
	var form dto.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		data["form"] = form
		formPage(c, "review_form.html", validation.FieldErrors(err), data)
		return
	}
	data["form"] = form

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.Create(ctx, middleware.CurrentUserID(c), shelf.ID, form.Input())
	if err != nil {
		if errors.Is(err, service.ErrRateOutOfRange) {
			formPage(c, "review_form.html", rateError(), data)
			return
		}
		handleError(c, err)
		return
	}

	done(c, detailURL(shelf.ID), http.StatusCreated, review)
}

// UpdateForm renders the form filled with the review
// GET /review/:id/update/
func (h *ReviewHandler) UpdateForm(c *gin.Context) {
	review, ok := h.loadForEdit(c)
	if !ok {
		return
	}

	form := dto.ReviewForm{Title: review.Title, Text: review.Text, Rate: strconv.Itoa(review.Rate)}
	formPage(c, "review_form.html", nil, gin.H{
		"title":  "Edit review",
		"review": review,
		"shelf":  review.Shelf,
		"form":   form,
	})
}

// Update saves the owner's changes
// POST /review/:id/update/
func (h *ReviewHandler) Update(c *gin.Context) {
	review, ok := h.loadForEdit(c)
	if !ok {
		return
	}

	data := gin.H{"title": "Edit review", "review": review, "shelf": review.Shelf}
	var form dto.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		data["form"] = form
		formPage(c, "review_form.html", validation.FieldErrors(err), data)
		return
	}
	data["form"] = form

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	updated, err := h.reviewService.Update(ctx, middleware.CurrentUserID(c), review.ID, form.Input())
	if err != nil {
		if errors.Is(err, service.ErrRateOutOfRange) {
			formPage(c, "review_form.html", rateError(), data)
			return
		}
		handleError(c, err)
		return
	}

	done(c, detailURL(updated.ShelfID), http.StatusOK, updated)
}

// DeleteConfirm asks before deleting
// GET /review/:id/delete/
func (h *ReviewHandler) DeleteConfirm(c *gin.Context) {
	review, ok := h.loadForEdit(c)
	if !ok {
		return
	}
	page(c, http.StatusOK, "review_confirm_delete.html", review, gin.H{"title": "Delete review", "review": review})
}

// Delete removes the review and its likes
// POST /review/:id/delete/
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	shelfID, err := h.reviewService.Delete(ctx, middleware.CurrentUserID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	done(c, detailURL(shelfID), http.StatusOK, nil)
}

func (h *ReviewHandler) loadShelf(c *gin.Context) (*models.Shelf, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	shelf, err := h.reviewService.GetShelf(ctx, id)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return shelf, true
}

func (h *ReviewHandler) loadForEdit(c *gin.Context) (*models.Review, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.GetForEdit(ctx, middleware.CurrentUserID(c), id)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return review, true
}

func detailURL(shelfID int64) string {
	return fmt.Sprintf("/%d/detail/", shelfID)
}

func rateError() map[string]string {
	return map[string]string{"rate": fmt.Sprintf("Select a rate between 0 and %d.", models.MaxRate)}
}
