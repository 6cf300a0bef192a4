package repository

import (
	"context"
	"strings"

	"bookshelf/internal/http-api/models"

	"gorm.io/gorm"
)

// ShelfFilter narrows the shelf listing. Empty fields do not filter.
type ShelfFilter struct {
	Keyword  string
	Category models.Category
}

type ShelfRepository interface {
	Create(ctx context.Context, shelf *models.Shelf) error
	Update(ctx context.Context, shelf *models.Shelf) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Shelf, error)
	Count(ctx context.Context, filter ShelfFilter) (int64, error)
	List(ctx context.Context, filter ShelfFilter, page, pageSize int) ([]models.Shelf, error)
	Ranking(ctx context.Context, limit int) ([]models.ShelfRank, error)
}

type shelfRepository struct {
	db *gorm.DB
}

func NewShelfRepository(db *gorm.DB) ShelfRepository {
	return &shelfRepository{db: db}
}

func (r *shelfRepository) Create(ctx context.Context, shelf *models.Shelf) error {
	return translateError(r.db.WithContext(ctx).Omit("User").Create(shelf).Error)
}

// Update writes the editable columns of an existing shelf
func (r *shelfRepository) Update(ctx context.Context, shelf *models.Shelf) error {
	result := r.db.WithContext(ctx).
		Model(&models.Shelf{ID: shelf.ID}).
		Select("title", "text", "category", "thumbnail", "thumbnail_blur_hash").
		Omit("User").
		Updates(shelf)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a shelf. Reviews and likes go with it through ON DELETE CASCADE.
func (r *shelfRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Shelf{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shelfRepository) GetByID(ctx context.Context, id int64) (*models.Shelf, error) {
	var shelf models.Shelf
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&shelf).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &shelf, nil
}

func (r *shelfRepository) Count(ctx context.Context, filter ShelfFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Model(&models.Shelf{}).Count(&total).Error
	return total, translateError(err)
}

// List returns one page of shelves, newest first
func (r *shelfRepository) List(ctx context.Context, filter ShelfFilter, page, pageSize int) ([]models.Shelf, error) {
	var shelves []models.Shelf
	offset := (page - 1) * pageSize
	err := r.filtered(ctx, filter).
		Preload("User").
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&shelves).Error
	if err != nil {
		return nil, translateError(err)
	}
	return shelves, nil
}

// Ranking returns the shelves with the highest average review rate.
// Shelves without reviews rank last; ties go to the newer shelf.
func (r *shelfRepository) Ranking(ctx context.Context, limit int) ([]models.ShelfRank, error) {
	var ranks []models.ShelfRank
	err := r.db.WithContext(ctx).
		Model(&models.Shelf{}).
		Select("shelves.*, AVG(reviews.rate)::float8 AS average_rate").
		Joins("LEFT JOIN reviews ON reviews.book_id = shelves.id").
		Group("shelves.id").
		Order("average_rate DESC NULLS LAST").
		Order("shelves.id DESC").
		Limit(limit).
		Scan(&ranks).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ranks, nil
}

func (r *shelfRepository) filtered(ctx context.Context, filter ShelfFilter) *gorm.DB {
	query := r.db.WithContext(ctx)
	if filter.Keyword != "" {
		pattern := "%" + escapeLike(filter.Keyword) + "%"
		query = query.Where("title ILIKE ? OR text ILIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the keyword match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
