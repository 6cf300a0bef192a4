package models

type Task struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string `json:"title" gorm:"size:100;not null"`
	Done  bool   `json:"done" gorm:"not null;default:false"`
}

func (Task) TableName() string {
	return "tasks"
}
