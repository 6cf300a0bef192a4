package models

import "time"

// Like is unique per (user, review).
type Like struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_review,priority:1"`
	ReviewID  int64     `json:"review_id" gorm:"not null;index;uniqueIndex:idx_likes_user_review,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Review *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Like) TableName() string {
	return "likes"
}
