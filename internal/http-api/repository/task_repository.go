package repository

import (
	"context"

	"bookshelf/internal/http-api/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	List(ctx context.Context) ([]models.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, translateError(err)
	}
	return tasks, nil
}
