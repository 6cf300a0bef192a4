package models

import "time"

// MaxRate is the highest score a review can give.
const MaxRate = 5

// RateChoices lists the selectable scores, 0..MaxRate.
func RateChoices() []int {
	choices := make([]int, 0, MaxRate+1)
	for i := 0; i <= MaxRate; i++ {
		choices = append(choices, i)
	}
	return choices
}

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ShelfID   int64     `json:"book_id" gorm:"column:book_id;not null;index"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Rate      int       `json:"rate" gorm:"not null;check:chk_reviews_rate,rate >= 0 AND rate <= 5"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Shelf *Shelf `json:"-" gorm:"foreignKey:ShelfID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) OwnerID() string {
	return r.UserID
}

// ReviewWithLikes is a review annotated for one viewer.
type ReviewWithLikes struct {
	Review
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}
