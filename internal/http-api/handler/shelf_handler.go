package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/middleware"
	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/http-api/validation"

	"github.com/gin-gonic/gin"
)

var errThumbnailTooLarge = errors.New("thumbnail too large")

type ShelfHandler struct {
	shelfService service.ShelfService
	maxUpload    int64
}

func NewShelfHandler(shelfService service.ShelfService, maxUpload int64) *ShelfHandler {
	return &ShelfHandler{
		shelfService: shelfService,
		maxUpload:    maxUpload,
	}
}

// RegisterRoutes registers shelf routes on a group that already requires login
func (h *ShelfHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.GET("/create/", h.CreateForm)
	router.POST("/create/", h.Create)

	shelf := router.Group("/:id")
	{
		shelf.GET("/detail/", h.Detail)
		shelf.GET("/update/", h.UpdateForm)
		shelf.POST("/update/", h.Update)
		shelf.GET("/delete/", h.DeleteConfirm)
		shelf.POST("/delete/", h.Delete)
	}
}

// List shows one page of shelves with the search filter and the ranking
// GET /?keyword=&category=&page=
func (h *ShelfHandler) List(c *gin.Context) {
	var query dto.ShelfListQuery
	_ = c.ShouldBindQuery(&query)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	view, err := h.shelfService.List(ctx, query)
	if err != nil {
		handleError(c, err)
		return
	}
	page(c, http.StatusOK, "shelf_list.html", view, gin.H{"view": view})
}

// Detail shows a shelf with a page of its reviews
// GET /:id/detail/?sort=&page=
func (h *ShelfHandler) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var query dto.ShelfDetailQuery
	_ = c.ShouldBindQuery(&query)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	view, err := h.shelfService.Detail(ctx, middleware.CurrentUserID(c), id, query)
	if err != nil {
		handleError(c, err)
		return
	}
	page(c, http.StatusOK, "shelf_detail.html", view, gin.H{"title": view.Shelf.Title, "view": view})
}

// CreateForm renders the empty shelf form
// GET /create/
func (h *ShelfHandler) CreateForm(c *gin.Context) {
	formPage(c, "shelf_form.html", nil, gin.H{"title": "New shelf", "form": dto.ShelfForm{}})
}

// Create stores a new shelf owned by the current user
// POST /create/
func (h *ShelfHandler) Create(c *gin.Context) {
	var form dto.ShelfForm
	if err := c.ShouldBind(&form); err != nil {
		formPage(c, "shelf_form.html", validation.FieldErrors(err), gin.H{"title": "New shelf", "form": form})
		return
	}

	thumbnail, err := h.readThumbnail(c)
	if err != nil {
		formPage(c, "shelf_form.html", thumbnailError(err), gin.H{"title": "New shelf", "form": form})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	shelf, err := h.shelfService.Create(ctx, middleware.CurrentUserID(c), form.Input(thumbnail))
	if err != nil {
		if errs := shelfFormErrors(err); errs != nil {
			formPage(c, "shelf_form.html", errs, gin.H{"title": "New shelf", "form": form})
			return
		}
		handleError(c, err)
		return
	}

	done(c, "/", http.StatusCreated, shelf)
}

// UpdateForm renders the form filled with the shelf's current values
// GET /:id/update/
func (h *ShelfHandler) UpdateForm(c *gin.Context) {
	shelf, ok := h.loadForEdit(c)
	if !ok {
		return
	}

	form := dto.ShelfForm{Title: shelf.Title, Text: shelf.Text, Category: string(shelf.Category)}
	formPage(c, "shelf_form.html", nil, gin.H{"title": "Edit shelf", "form": form, "shelf": shelf})
}

// Update saves the owner's changes
// POST /:id/update/
func (h *ShelfHandler) Update(c *gin.Context) {
	shelf, ok := h.loadForEdit(c)
	if !ok {
		return
	}

	data := gin.H{"title": "Edit shelf", "shelf": shelf}
	var form dto.ShelfForm
	if err := c.ShouldBind(&form); err != nil {
		data["form"] = form
		formPage(c, "shelf_form.html", validation.FieldErrors(err), data)
		return
	}
	data["form"] = form

	thumbnail, err := h.readThumbnail(c)
	if err != nil {
		formPage(c, "shelf_form.html", thumbnailError(err), data)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	updated, err := h.shelfService.Update(ctx, middleware.CurrentUserID(c), shelf.ID, form.Input(thumbnail))
	if err != nil {
		if errs := shelfFormErrors(err); errs != nil {
			formPage(c, "shelf_form.html", errs, data)
			return
		}
		handleError(c, err)
		return
	}

	done(c, "/", http.StatusOK, updated)
}

// DeleteConfirm asks before deleting
// GET /:id/delete/
func (h *ShelfHandler) DeleteConfirm(c *gin.Context) {
	shelf, ok := h.loadForEdit(c)
	if !ok {
		return
	}
	page(c, http.StatusOK, "shelf_confirm_delete.html", shelf, gin.H{"title": "Delete shelf", "shelf": shelf})
}

// Delete removes the shelf with its reviews, likes and thumbnail
// POST /:id/delete/
func (h *ShelfHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.shelfService.Delete(ctx, middleware.CurrentUserID(c), id); err != nil {
		handleError(c, err)
		return
	}
	done(c, "/", http.StatusOK, nil)
}

// loadForEdit resolves 404 and 403 before either the form or the POST is served
func (h *ShelfHandler) loadForEdit(c *gin.Context) (*models.Shelf, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	shelf, err := h.shelfService.GetForEdit(ctx, middleware.CurrentUserID(c), id)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return shelf, true
}

// readThumbnail returns the uploaded file, or nil when none was sent
func (h *ShelfHandler) readThumbnail(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("thumbnail")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size > h.maxUpload {
		return nil, errThumbnailTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxUpload {
		return nil, errThumbnailTooLarge
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func thumbnailError(err error) map[string]string {
	if errors.Is(err, errThumbnailTooLarge) {
		return map[string]string{"thumbnail": "The uploaded file is too large."}
	}
	return map[string]string{"thumbnail": fmt.Sprintf("The uploaded file could not be read: %v", err)}
}

func shelfFormErrors(err error) map[string]string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Fields
	case errors.Is(err, service.ErrInvalidCategory):
		return map[string]string{"category": "Select a valid category."}
	}
	return nil
}
