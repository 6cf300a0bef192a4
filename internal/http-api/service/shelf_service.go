package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
	"bookshelf/internal/logger"
	"bookshelf/internal/storage"
)

const rankingSize = 3

type ShelfService interface {
	List(ctx context.Context, query dto.ShelfListQuery) (*dto.ShelfListView, error)
	Detail(ctx context.Context, viewerID string, id int64, query dto.ShelfDetailQuery) (*dto.ShelfDetailView, error)
	Create(ctx context.Context, actorID string, input dto.ShelfInput) (*models.Shelf, error)
	GetForEdit(ctx context.Context, actorID string, id int64) (*models.Shelf, error)
	Update(ctx context.Context, actorID string, id int64, input dto.ShelfInput) (*models.Shelf, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

type shelfService struct {
	shelfRepo  repository.ShelfRepository
	reviewRepo repository.ReviewRepository
	likeRepo   repository.LikeRepository
	store      storage.Store
}

func NewShelfService(
	shelfRepo repository.ShelfRepository,
	reviewRepo repository.ReviewRepository,
	likeRepo repository.LikeRepository,
	store storage.Store,
) ShelfService {
	return &shelfService{
		shelfRepo:  shelfRepo,
		reviewRepo: reviewRepo,
		likeRepo:   likeRepo,
		store:      store,
	}
}

// List returns one page of shelves matching the keyword and category,
// together with the average-rate ranking.
func (s *shelfService) List(ctx context.Context, query dto.ShelfListQuery) (*dto.ShelfListView, error) {
	filter := repository.ShelfFilter{
		Keyword:  query.Keyword,
		Category: models.Category(query.Category),
	}

	total, err := s.shelfRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := dto.NewPage(total, dto.ParsePageNumber(query.Page), dto.ShelfPageSize)

	shelves, err := s.shelfRepo.List(ctx, filter, page.Number, page.PageSize)
	if err != nil {
		return nil, err
	}

	ranking, err := s.shelfRepo.Ranking(ctx, rankingSize)
	if err != nil {
		return nil, err
	}

	return &dto.ShelfListView{
		Shelves:          shelves,
		Page:             page,
		Categories:       models.Categories,
		Keyword:          query.Keyword,
		SelectedCategory: query.Category,
		RankingList:      ranking,
	}, nil
}

// Detail returns a shelf with one page of its reviews, each annotated with
// its like count and whether the viewer liked it.
func (s *shelfService) Detail(ctx context.Context, viewerID string, id int64, query dto.ShelfDetailQuery) (*dto.ShelfDetailView, error) {
	shelf, err := s.getShelf(ctx, id)
	if err != nil {
		return nil, err
	}

	currentSort := query.Sort
	if currentSort == "" {
		currentSort = "new"
	}
	order := repository.ReviewOrderNewest
	if query.Sort == "rate" {
		order = repository.ReviewOrderRate
	}

	total, err := s.reviewRepo.CountByShelf(ctx, id)
	if err != nil {
		return nil, err
	}
	page := dto.NewPage(total, dto.ParsePageNumber(query.Page), dto.ReviewPageSize)

	reviews, err := s.reviewRepo.ListByShelf(ctx, id, order, page.Number, page.PageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	counts, err := s.likeRepo.CountByReviews(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.LikedReviewIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	annotated := make([]models.ReviewWithLikes, 0, len(reviews))
	for _, r := range reviews {
		annotated = append(annotated, models.ReviewWithLikes{
			Review:    r,
			LikeCount: counts[r.ID],
			IsLiked:   liked[r.ID],
		})
	}

	return &dto.ShelfDetailView{
		Shelf:       shelf,
		Reviews:     annotated,
		Page:        page,
		ReviewCount: total,
		CurrentSort: currentSort,
	}, nil
}

func (s *shelfService) Create(ctx context.Context, actorID string, input dto.ShelfInput) (*models.Shelf, error) {
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}

	shelf := &models.Shelf{
		Title:    input.Title,
		Text:     input.Text,
		Category: input.Category,
		UserID:   actorID,
	}

	if len(input.Thumbnail) > 0 {
		key, hash, err := s.storeThumbnail(ctx, input.Thumbnail)
		if err != nil {
			return nil, err
		}
		shelf.Thumbnail = &key
		shelf.ThumbnailBlurHash = &hash
	}

	if err := s.shelfRepo.Create(ctx, shelf); err != nil {
		if shelf.Thumbnail != nil {
			s.removeThumbnail(ctx, *shelf.Thumbnail)
		}
		return nil, err
	}
	return shelf, nil
}

// GetForEdit loads a shelf the actor is allowed to modify.
func (s *shelfService) GetForEdit(ctx context.Context, actorID string, id int64) (*models.Shelf, error) {
	shelf, err := s.getShelf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actorID, shelf) {
		return nil, ErrForbidden
	}
	return shelf, nil
}

func (s *shelfService) Update(ctx context.Context, actorID string, id int64, input dto.ShelfInput) (*models.Shelf, error) {
	shelf, err := s.GetForEdit(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}

	shelf.Title = input.Title
	shelf.Text = input.Text
	shelf.Category = input.Category

	var oldKey, newKey string
	if shelf.Thumbnail != nil {
		oldKey = *shelf.Thumbnail
	}
	switch {
	case len(input.Thumbnail) > 0:
		key, hash, err := s.storeThumbnail(ctx, input.Thumbnail)
		if err != nil {
			return nil, err
		}
		newKey = key
		shelf.Thumbnail = &key
		shelf.ThumbnailBlurHash = &hash
	case input.ThumbnailClear:
		shelf.Thumbnail = nil
		shelf.ThumbnailBlurHash = nil
	default:
		oldKey = ""
	}

	if err := s.shelfRepo.Update(ctx, shelf); err != nil {
		if newKey != "" {
			s.removeThumbnail(ctx, newKey)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, err
	}

	if oldKey != "" {
		s.removeThumbnail(ctx, oldKey)
	}
	return shelf, nil
}

// Delete removes the shelf, its reviews and likes, and its thumbnail.
func (s *shelfService) Delete(ctx context.Context, actorID string, id int64) error {
	shelf, err := s.GetForEdit(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.shelfRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShelfNotFound
		}
		return err
	}

	if shelf.Thumbnail != nil {
		s.removeThumbnail(ctx, *shelf.Thumbnail)
	}
	return nil
}

func (s *shelfService) getShelf(ctx context.Context, id int64) (*models.Shelf, error) {
	shelf, err := s.shelfRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, err
	}
	return shelf, nil
}

func (s *shelfService) storeThumbnail(ctx context.Context, data []byte) (string, string, error) {
	img, err := storage.InspectImage(data)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return "", "", fieldError("thumbnail", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		}
		return "", "", err
	}

	key := storage.NewThumbnailKey(img.Ext)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), img.ContentType); err != nil {
		return "", "", fmt.Errorf("store thumbnail: %w", err)
	}
	return key, img.BlurHash, nil
}

// removeThumbnail is best effort; a leftover object is only logged.
func (s *shelfService) removeThumbnail(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("delete thumbnail failed", "key", key, "error", err)
	}
}
