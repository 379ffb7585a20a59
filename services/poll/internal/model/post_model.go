package model

import (
	"time"

	"gorm.io/gorm"
)

// Reduced view of the posts table. The poll service only needs existence and
// authorship of the post a poll decorates.
type PostModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID  string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string         `gorm:"not null" json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}
