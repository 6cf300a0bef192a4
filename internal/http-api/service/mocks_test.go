package service

import (
	"context"
	"time"

	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockSessionStore mocks session.Store
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) NewSession(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) UserIDByToken(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockShelfRepository mocks the ShelfRepository interface
type MockShelfRepository struct {
	mock.Mock
}

func (m *MockShelfRepository) Create(ctx context.Context, shelf *models.Shelf) error {
	args := m.Called(ctx, shelf)
	return args.Error(0)
}

func (m *MockShelfRepository) Update(ctx context.Context, shelf *models.Shelf) error {
	args := m.Called(ctx, shelf)
	return args.Error(0)
}

func (m *MockShelfRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShelfRepository) GetByID(ctx context.Context, id int64) (*models.Shelf, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shelf), args.Error(1)
}

func (m *MockShelfRepository) Count(ctx context.Context, filter repository.ShelfFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShelfRepository) List(ctx context.Context, filter repository.ShelfFilter, page, pageSize int) ([]models.Shelf, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shelf), args.Error(1)
}

func (m *MockShelfRepository) Ranking(ctx context.Context, limit int) ([]models.ShelfRank, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShelfRank), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByShelf(ctx context.Context, shelfID int64) (int64, error) {
	args := m.Called(ctx, shelfID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) ListByShelf(ctx context.Context, shelfID int64, order repository.ReviewOrder, page, pageSize int) ([]models.Review, error) {
	args := m.Called(ctx, shelfID, order, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockLikeRepository mocks the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID string, reviewID int64) (bool, int64, error) {
	args := m.Called(ctx, userID, reviewID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) CountByReviews(ctx context.Context, reviewIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, reviewIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockLikeRepository) LikedReviewIDs(ctx context.Context, userID string, reviewIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, reviewIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}
