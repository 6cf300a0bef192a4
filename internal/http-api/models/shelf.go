package models

import "time"

type Shelf struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title             string    `json:"title" gorm:"size:100;not null"`
	Text              string    `json:"text" gorm:"type:text;not null"`
	Category          Category  `json:"category" gorm:"size:100;not null;index;check:chk_shelves_category,category IN ('business','life','hobby','science','history','art','novel','comic','other')"`
	Thumbnail         *string   `json:"thumbnail,omitempty"`
	ThumbnailBlurHash *string   `json:"thumbnail_blurhash,omitempty"`
	UserID            string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Shelf) TableName() string {
	return "shelves"
}

func (s *Shelf) OwnerID() string {
	return s.UserID
}

// ShelfRank is one entry of the average-rate ranking.
// AverageRate is nil for shelves without reviews.
type ShelfRank struct {
	Shelf
	AverageRate *float64 `json:"average_rate"`
}
