package dto

import "bookshelf/internal/http-api/models"

// ShelfListView is the context of the shelf list page
type ShelfListView struct {
	Shelves          []models.Shelf          `json:"shelves"`
	Page             Page                    `json:"page"`
	Categories       []models.CategoryChoice `json:"categories"`
	Keyword          string                  `json:"keyword"`
	SelectedCategory string                  `json:"selected_category"`
	RankingList      []models.ShelfRank      `json:"ranking_list"`
}

// ShelfDetailView is the context of the shelf detail page
type ShelfDetailView struct {
	Shelf       *models.Shelf            `json:"shelf"`
	Reviews     []models.ReviewWithLikes `json:"reviews"`
	Page        Page                     `json:"page"`
	ReviewCount int64                    `json:"review_count"`
	CurrentSort string                   `json:"current_sort"`
}

// LikeResult is the body of the toggle_like response
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// ShelfInput carries validated shelf fields into the service
type ShelfInput struct {
	Title          string
	Text           string
	Category       models.Category
	Thumbnail      []byte
	ThumbnailClear bool
}

// ReviewInput carries validated review fields into the service
type ReviewInput struct {
	Title string
	Text  string
	Rate  int
}

func (f ShelfForm) Input(thumbnail []byte) ShelfInput {
	return ShelfInput{
		Title:          f.Title,
		Text:           f.Text,
		Category:       models.Category(f.Category),
		Thumbnail:      thumbnail,
		ThumbnailClear: f.ClearThumbnail(),
	}
}

func (f ReviewForm) Input() ReviewInput {
	return ReviewInput{Title: f.Title, Text: f.Text, Rate: f.RateValue()}
}
