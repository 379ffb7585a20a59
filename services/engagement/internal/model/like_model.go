package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Edge rows are hard-deleted on toggle-off. The composite unique index is the
// race-breaker for concurrent toggles from the same user.

type PostLikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_user_post" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

func (l *PostLikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type ReplyLikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_reply_likes_user_reply" json:"user_id"`
	ReplyID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_reply_likes_user_reply" json:"reply_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReplyLikeModel) TableName() string {
	return "reply_likes"
}

func (l *ReplyLikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type PolicyLikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_policy_likes_user_policy" json:"user_id"`
	PolicyID  string    `gorm:"not null;uniqueIndex:idx_policy_likes_user_policy" json:"policy_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PolicyLikeModel) TableName() string {
	return "policy_likes"
}

func (l *PolicyLikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
