package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
)

// memDB is an in-memory stand-in for Postgres with the same foreign key
// cascades and (user_id, review_id) uniqueness.
type memDB struct {
	mu      sync.Mutex
	nextID  int64
	users   map[string]*models.User
	shelves map[int64]*models.Shelf
	reviews map[int64]*models.Review
	likes   map[int64]*models.Like

	// beforeLikeInsert runs, unlocked, between a toggle's delete and its insert.
	beforeLikeInsert func()
}

func newMemDB() *memDB {
	return &memDB{
		users:   make(map[string]*models.User),
		shelves: make(map[int64]*models.Shelf),
		reviews: make(map[int64]*models.Review),
		likes:   make(map[int64]*models.Like),
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) addUser(id, username string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[id] = &models.User{ID: id, Username: username}
}

type memShelves struct{ db *memDB }
type memReviews struct{ db *memDB }
type memLikes struct{ db *memDB }

var (
	_ repository.ShelfRepository  = memShelves{}
	_ repository.ReviewRepository = memReviews{}
	_ repository.LikeRepository   = memLikes{}
)

func (r memShelves) Create(_ context.Context, shelf *models.Shelf) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	shelf.ID = r.db.id()
	shelf.CreatedAt = time.Now()
	cp := *shelf
	r.db.shelves[shelf.ID] = &cp
	return nil
}

func (r memShelves) Update(_ context.Context, shelf *models.Shelf) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.shelves[shelf.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *shelf
	r.db.shelves[shelf.ID] = &cp
	return nil
}

func (r memShelves) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.shelves[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.shelves, id)
	for rid, review := range r.db.reviews {
		if review.ShelfID == id {
			r.db.deleteReviewLocked(rid)
		}
	}
	return nil
}

func (r memShelves) GetByID(_ context.Context, id int64) (*models.Shelf, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	shelf, ok := r.db.shelves[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *shelf
	cp.User = r.db.users[cp.UserID]
	return &cp, nil
}

func (r memShelves) matching(filter repository.ShelfFilter) []models.Shelf {
	keyword := strings.ToLower(filter.Keyword)
	var out []models.Shelf
	for _, s := range r.db.shelves {
		if keyword != "" && !strings.Contains(strings.ToLower(s.Title), keyword) && !strings.Contains(strings.ToLower(s.Text), keyword) {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memShelves) Count(_ context.Context, filter repository.ShelfFilter) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r memShelves) List(_ context.Context, filter repository.ShelfFilter, page, pageSize int) ([]models.Shelf, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.matching(filter)
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], nil
}

func (r memShelves) Ranking(_ context.Context, limit int) ([]models.ShelfRank, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ranks []models.ShelfRank
	for _, s := range r.db.shelves {
		var sum, n int
		for _, review := range r.db.reviews {
			if review.ShelfID == s.ID {
				sum += review.Rate
				n++
			}
		}
		rank := models.ShelfRank{Shelf: *s}
		if n > 0 {
			avg := float64(sum) / float64(n)
			rank.AverageRate = &avg
		}
		ranks = append(ranks, rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		a, b := ranks[i].AverageRate, ranks[j].AverageRate
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a > *b
		}
		return ranks[i].ID > ranks[j].ID
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

func (db *memDB) deleteReviewLocked(id int64) {
	delete(db.reviews, id)
	for lid, like := range db.likes {
		if like.ReviewID == id {
			delete(db.likes, lid)
		}
	}
}

func (r memReviews) Create(_ context.Context, review *models.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.shelves[review.ShelfID]; !ok {
		return repository.ErrNotFound
	}
	review.ID = r.db.id()
	review.CreatedAt = time.Now()
	cp := *review
	cp.Shelf = nil
	r.db.reviews[review.ID] = &cp
	return nil
}

func (r memReviews) Update(_ context.Context, review *models.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.reviews[review.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title, existing.Text, existing.Rate = review.Title, review.Text, review.Rate
	return nil
}

func (r memReviews) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	r.db.deleteReviewLocked(id)
	return nil
}

func (r memReviews) GetByID(_ context.Context, id int64) (*models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	review, ok := r.db.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *review
	cp.User = r.db.users[cp.UserID]
	if shelf, ok := r.db.shelves[cp.ShelfID]; ok {
		s := *shelf
		cp.Shelf = &s
	}
	return &cp, nil
}

func (r memReviews) byShelf(shelfID int64) []models.Review {
	var out []models.Review
	for _, review := range r.db.reviews {
		if review.ShelfID == shelfID {
			out = append(out, *review)
		}
	}
	return out
}

func (r memReviews) CountByShelf(_ context.Context, shelfID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.byShelf(shelfID))), nil
}

func (r memReviews) ListByShelf(_ context.Context, shelfID int64, order repository.ReviewOrder, page, pageSize int) ([]models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.byShelf(shelfID)
	sort.Slice(all, func(i, j int) bool {
		if order == repository.ReviewOrderRate && all[i].Rate != all[j].Rate {
			return all[i].Rate > all[j].Rate
		}
		return all[i].ID > all[j].ID
	})
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], nil
}

// Toggle runs delete, insert and count as separate critical sections so
// concurrent callers interleave the way separate SQL statements would.
func (r memLikes) Toggle(_ context.Context, userID string, reviewID int64) (bool, int64, error) {
	r.db.mu.Lock()
	deleted := false
	for id, like := range r.db.likes {
		if like.UserID == userID && like.ReviewID == reviewID {
			delete(r.db.likes, id)
			deleted = true
		}
	}
	r.db.mu.Unlock()

	liked := false
	if !deleted {
		if r.db.beforeLikeInsert != nil {
			r.db.beforeLikeInsert()
		}
		r.db.mu.Lock()
		if _, ok := r.db.reviews[reviewID]; !ok {
			r.db.mu.Unlock()
			return false, 0, repository.ErrNotFound
		}
		for _, like := range r.db.likes {
			if like.UserID == userID && like.ReviewID == reviewID {
				r.db.mu.Unlock()
				return false, 0, repository.ErrDuplicate
			}
		}
		id := r.db.id()
		r.db.likes[id] = &models.Like{ID: id, UserID: userID, ReviewID: reviewID}
		r.db.mu.Unlock()
		liked = true
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var count int64
	for _, like := range r.db.likes {
		if like.ReviewID == reviewID {
			count++
		}
	}
	return liked, count, nil
}

func (r memLikes) CountByReviews(_ context.Context, reviewIDs []int64) (map[int64]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	counts := make(map[int64]int64)
	for _, id := range reviewIDs {
		for _, like := range r.db.likes {
			if like.ReviewID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r memLikes) LikedReviewIDs(_ context.Context, userID string, reviewIDs []int64) (map[int64]bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	liked := make(map[int64]bool)
	for _, id := range reviewIDs {
		for _, like := range r.db.likes {
			if like.ReviewID == id && like.UserID == userID {
				liked[id] = true
			}
		}
	}
	return liked, nil
}

func (db *memDB) likeCount(userID string, reviewID int64) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, like := range db.likes {
		if like.ReviewID == reviewID && (userID == "" || like.UserID == userID) {
			n++
		}
	}
	return n
}
