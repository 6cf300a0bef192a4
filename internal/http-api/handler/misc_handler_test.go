package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshelf/internal/http-api/models"
	"bookshelf/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskList_NoLoginNeeded(t *testing.T) {
	mockTaskService := new(MockTaskService)
	router := setupRouter(t, nil)
	NewTaskHandler(mockTaskService).RegisterRoutes(router.Group(""))

	mockTaskService.On("List", mock.Anything).Return([]models.Task{
		{ID: 1, Title: "write docs"},
		{ID: 2, Title: "ship it", Done: true},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "write docs")
	assert.Contains(t, w.Body.String(), "<s>ship it</s>")
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, nil)
	RegisterHealth(router.Group(""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMedia_ServesLocalFiles(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	content := []byte("\x89PNG\r\n\x1a\nfake")
	require.NoError(t, store.Put(context.Background(), "thumbnails/a.png", bytes.NewReader(content), int64(len(content)), "image/png"))

	router := setupRouter(t, nil)
	NewMediaHandler(store).RegisterRoutes(router.Group(""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/thumbnails/a.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, content, w.Body.Bytes())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/thumbnails/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type presigningStore struct {
	storage.Store
	err error
}

func (p presigningStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "https://objects.example/bookshelf/" + key + "?sig=abc", nil
}

func TestMedia_RedirectsToPresignedURL(t *testing.T) {
	router := setupRouter(t, nil)
	NewMediaHandler(presigningStore{}).RegisterRoutes(router.Group(""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/thumbnails/a.png", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://objects.example/bookshelf/thumbnails/a.png?sig=abc", w.Header().Get("Location"))
}

func TestMedia_PresignFailure(t *testing.T) {
	router := setupRouter(t, nil)
	NewMediaHandler(presigningStore{err: errors.New("minio unreachable")}).RegisterRoutes(router.Group(""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/thumbnails/a.png", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// withDeadline matches contexts bounded by the handler's request timeout.
func withDeadline() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= requestTimeout
	})
}

func TestTaskList_ServiceCallHasTimeout(t *testing.T) {
	mockTaskService := new(MockTaskService)
	router := setupRouter(t, nil)
	NewTaskHandler(mockTaskService).RegisterRoutes(router.Group(""))

	mockTaskService.On("List", withDeadline()).Return([]models.Task{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	mockTaskService.AssertExpectations(t)
}
