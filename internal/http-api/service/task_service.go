package service

import (
	"context"

	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
)

type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	return s.taskRepo.List(ctx)
}
