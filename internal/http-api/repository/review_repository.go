package repository

import (
	"context"

	"bookshelf/internal/http-api/models"

	"gorm.io/gorm"
)

// ReviewOrder selects how a shelf's reviews are listed.
type ReviewOrder int

const (
	ReviewOrderNewest ReviewOrder = iota
	ReviewOrderRate
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	CountByShelf(ctx context.Context, shelfID int64) (int64, error)
	ListByShelf(ctx context.Context, shelfID int64, order ReviewOrder, page, pageSize int) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Omit("User", "Shelf").Create(review).Error)
}

// Update an existing review's title, text and rate
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{ID: review.ID}).
		Select("title", "text", "rate").
		Omit("User", "Shelf").
		Updates(review)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete a review. Its likes are removed by ON DELETE CASCADE.
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a review together with its author and parent shelf
func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Shelf").
		Where("id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

// CountByShelf counts the total number of reviews for a shelf
func (r *reviewRepository) CountByShelf(ctx context.Context, shelfID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("book_id = ?", shelfID).Count(&count).Error
	return count, translateError(err)
}

// ListByShelf retrieves one page of a shelf's reviews
func (r *reviewRepository) ListByShelf(ctx context.Context, shelfID int64, order ReviewOrder, page, pageSize int) ([]models.Review, error) {
	var reviews []models.Review

	query := r.db.WithContext(ctx).
		Where("book_id = ?", shelfID).
		Preload("User")
	switch order {
	case ReviewOrderRate:
		query = query.Order("rate DESC").Order("id DESC")
	default:
		query = query.Order("id DESC")
	}

	offset := (page - 1) * pageSize
	if err := query.Limit(pageSize).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, translateError(err)
	}
	return reviews, nil
}
