package repository

import (
	"context"

	"bookshelf/internal/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Toggle(ctx context.Context, userID string, reviewID int64) (liked bool, count int64, err error)
	CountByReviews(ctx context.Context, reviewIDs []int64) (map[int64]int64, error)
	LikedReviewIDs(ctx context.Context, userID string, reviewIDs []int64) (map[int64]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle removes the user's like on a review if present, otherwise adds one,
// and returns the resulting state with the review's like count. The three
// statements share one transaction. A concurrent insert of the same pair
// fails on idx_likes_user_review and comes back as ErrDuplicate.
func (r *likeRepository) Toggle(ctx context.Context, userID string, reviewID int64) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			like := &models.Like{UserID: userID, ReviewID: reviewID}
			if err := tx.Create(like).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&models.Like{}).Where("review_id = ?", reviewID).Count(&count).Error
	})
	if err != nil {
		return false, 0, translateError(err)
	}
	return liked, count, nil
}

// CountByReviews returns the like count per review. Reviews without likes are absent.
func (r *likeRepository) CountByReviews(ctx context.Context, reviewIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ReviewID int64
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("review_id, COUNT(*) AS total").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Total
	}
	return counts, nil
}

// LikedReviewIDs reports which of the given reviews the user has liked
func (r *likeRepository) LikedReviewIDs(ctx context.Context, userID string, reviewIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(reviewIDs))
	if userID == "" || len(reviewIDs) == 0 {
		return liked, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND review_id IN ?", userID, reviewIDs).
		Pluck("review_id", &ids).Error
	if err != nil {
		return nil, translateError(err)
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
