package model

import (
	"time"

	"gorm.io/gorm"
)

// Reduced views of rows owned by other services. The engagement service only
// needs them for existence checks and author lookups.

type UserModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Nickname  string         `gorm:"not null" json:"nickname"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

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

type ReplyModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string         `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  string         `gorm:"type:uuid;not null;index" json:"author_id"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReplyModel) TableName() string {
	return "replies"
}

type PolicyModel struct {
	ID   string `gorm:"primary_key" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (PolicyModel) TableName() string {
	return "policies"
}
