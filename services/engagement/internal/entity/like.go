package entity

import (
	"errors"
	"fmt"
	"time"
)

// LikeKind selects which edge table a toggle operates on. The toggle
// algorithm is identical for every kind.
type LikeKind string

const (
	LikeKindPost   LikeKind = "post"
	LikeKindReply  LikeKind = "reply"
	LikeKindPolicy LikeKind = "policy"
)

func ParseLikeKind(s string) (LikeKind, error) {
	switch LikeKind(s) {
	case LikeKindPost, LikeKindReply, LikeKindPolicy:
		return LikeKind(s), nil
	}
	return "", fmt.Errorf("unknown like kind %q", s)
}

// ToggleOutcome reports which way a toggle flipped.
type ToggleOutcome string

const (
	OutcomeAdded   ToggleOutcome = "added"
	OutcomeRemoved ToggleOutcome = "removed"
)

type Like struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ResourceID string    `json:"resource_id"`
	Kind       LikeKind  `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikedPost is a row of the "posts I liked" listing.
type LikedPost struct {
	PostID string `json:"post_id"`
	Title  string `json:"title"`
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrResourceNotFound = errors.New("resource not found")
)
