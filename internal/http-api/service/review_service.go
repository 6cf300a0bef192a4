package service

import (
	"context"
	"errors"
	"fmt"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
)

type ReviewService interface {
	GetShelf(ctx context.Context, shelfID int64) (*models.Shelf, error)
	Create(ctx context.Context, actorID string, shelfID int64, input dto.ReviewInput) (*models.Review, error)
	GetForEdit(ctx context.Context, actorID string, id int64) (*models.Review, error)
	Update(ctx context.Context, actorID string, id int64, input dto.ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, actorID string, id int64) (shelfID int64, err error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	shelfRepo  repository.ShelfRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, shelfRepo repository.ShelfRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		shelfRepo:  shelfRepo,
	}
}

// GetShelf returns the shelf a new review would be attached to
func (s *reviewService) GetShelf(ctx context.Context, shelfID int64) (*models.Shelf, error) {
	shelf, err := s.shelfRepo.GetByID(ctx, shelfID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, err
	}
	return shelf, nil
}

// Create attaches a new review by actorID to the shelf
func (s *reviewService) Create(ctx context.Context, actorID string, shelfID int64, input dto.ReviewInput) (*models.Review, error) {
	shelf, err := s.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if err := checkRate(input.Rate); err != nil {
		return nil, err
	}

	review := &models.Review{
		ShelfID: shelf.ID,
		Title:   input.Title,
		Text:    input.Text,
		Rate:    input.Rate,
		UserID:  actorID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// the shelf was deleted in between
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, err
	}
	review.Shelf = shelf
	return review, nil
}

// GetForEdit loads a review, with its shelf, that the actor may modify
func (s *reviewService) GetForEdit(ctx context.Context, actorID string, id int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if !CanModify(actorID, review) {
		return nil, ErrForbidden
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actorID string, id int64, input dto.ReviewInput) (*models.Review, error) {
	review, err := s.GetForEdit(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := checkRate(input.Rate); err != nil {
		return nil, err
	}

	review.Title = input.Title
	review.Text = input.Text
	review.Rate = input.Rate
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Delete removes the review and its likes and returns the parent shelf id
func (s *reviewService) Delete(ctx context.Context, actorID string, id int64) (int64, error) {
	review, err := s.GetForEdit(ctx, actorID, id)
	if err != nil {
		return 0, err
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrReviewNotFound
		}
		return 0, err
	}
	return review.ShelfID, nil
}

func checkRate(rate int) error {
	if rate < 0 || rate > models.MaxRate {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrRateOutOfRange, rate, models.MaxRate)
	}
	return nil
}
