package service

import (
	"context"
	"errors"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/repository"
)

type LikeService interface {
	Toggle(ctx context.Context, userID string, reviewID int64) (*dto.LikeResult, error)
}

type likeService struct {
	likeRepo   repository.LikeRepository
	reviewRepo repository.ReviewRepository
}

func NewLikeService(likeRepo repository.LikeRepository, reviewRepo repository.ReviewRepository) LikeService {
	return &likeService{
		likeRepo:   likeRepo,
		reviewRepo: reviewRepo,
	}
}

// Toggle flips the user's like on a review. Two toggles by the same user
// restore the previous state. A lost race against a concurrent toggle of the
// same pair yields ErrLikeConflict and is safe to retry.
func (s *likeService) Toggle(ctx context.Context, userID string, reviewID int64) (*dto.LikeResult, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	liked, count, err := s.likeRepo.Toggle(ctx, userID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrLikeConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return &dto.LikeResult{Liked: liked, LikeCount: count}, nil
}
