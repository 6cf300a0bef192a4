package handler

import (
	"context"
	"net/http"

	"bookshelf/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tasks/", h.List)
}

// List shows every task. No login required.
// GET /tasks/
func (h *TaskHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tasks, err := h.taskService.List(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	page(c, http.StatusOK, "task_list.html", tasks, gin.H{"title": "Tasks", "tasks": tasks})
}
