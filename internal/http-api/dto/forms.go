package dto

import (
	"strconv"
	"strings"
)

// SignupForm for creating an account
type SignupForm struct {
	Username  string `form:"username" json:"username" binding:"required,max=150,username"`
	Password1 string `form:"password1" json:"password1" binding:"required"`
	Password2 string `form:"password2" json:"password2" binding:"required"`
}

// LoginForm for opening a session. Next is the page to return to.
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

// ShelfForm for creating or updating a shelf. The thumbnail file is read
// from the multipart body separately.
type ShelfForm struct {
	Title          string `form:"title" json:"title" binding:"required,max=100"`
	Text           string `form:"text" json:"text" binding:"required"`
	Category       string `form:"category" json:"category" binding:"required,category"`
	ThumbnailClear string `form:"thumbnail-clear" json:"thumbnail_clear"`
}

// ClearThumbnail reports whether the clear checkbox was ticked. Browsers
// send "on" for a checkbox without a value.
func (f ShelfForm) ClearThumbnail() bool {
	switch strings.ToLower(f.ThumbnailClear) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// ReviewForm for creating or updating a review
type ReviewForm struct {
	Title string `form:"title" json:"title" binding:"required,max=100"`
	Text  string `form:"text" json:"text" binding:"required"`
	Rate  string `form:"rate" json:"rate" binding:"required,rate"`
}

// RateValue returns the parsed rate. Only call after validation passed.
func (f ReviewForm) RateValue() int {
	rate, _ := strconv.Atoi(f.Rate)
	return rate
}

// ShelfListQuery for GET /
type ShelfListQuery struct {
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
	Page     string `form:"page"`
}

// ShelfDetailQuery for GET /:id/detail/
type ShelfDetailQuery struct {
	Sort string `form:"sort"`
	Page string `form:"page"`
}
