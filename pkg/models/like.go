package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like edges are hard-deleted on toggle-off so the composite unique index
// always reflects the live state. No soft delete here.

type PostLike struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_user_post" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type ReplyLike struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_reply_likes_user_reply" json:"user_id"`
	ReplyID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_reply_likes_user_reply" json:"reply_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *ReplyLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type PolicyLike struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_policy_likes_user_policy" json:"user_id"`
	PolicyID  string    `gorm:"not null;uniqueIndex:idx_policy_likes_user_policy" json:"policy_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *PolicyLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
