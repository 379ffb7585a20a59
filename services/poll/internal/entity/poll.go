package entity

import (
	"errors"
	"time"
)

type Poll struct {
	ID             string       `json:"id"`
	PostID         string       `json:"post_id"`
	Question       string       `json:"question"`
	ClosesAt       *time.Time   `json:"closes_at"`
	AllowsMultiple bool         `json:"allows_multiple"`
	Options        []PollOption `json:"options"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Tally int64  `json:"tally"`
}

// Closed derives the poll state from the closing timestamp. There is no
// stored status; the comparison happens at the moment of each operation.
func (p *Poll) Closed(now time.Time) bool {
	return p.ClosesAt != nil && p.ClosesAt.Before(now)
}

// PollView is the read shape returned to callers: per-option tallies plus
// which options the requesting user currently holds ballots on.
type PollView struct {
	PollID         string       `json:"poll_id"`
	PostID         string       `json:"post_id"`
	Question       string       `json:"question"`
	ClosesAt       *time.Time   `json:"closes_at"`
	AllowsMultiple bool         `json:"allows_multiple"`
	Closed         bool         `json:"closed"`
	Options        []OptionView `json:"options"`
}

type OptionView struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Tally    int64  `json:"tally"`
	Selected bool   `json:"selected"`
}

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrPollNotFound       = errors.New("poll not found")
	ErrPollExists         = errors.New("post already has a poll")
	ErrForbidden          = errors.New("only the post author may modify the poll")
	ErrPollClosed         = errors.New("poll is closed")
	ErrMultipleNotAllowed = errors.New("poll does not allow multiple choices")
	ErrInvalidOption      = errors.New("option does not belong to this poll")
	ErrDuplicateOption    = errors.New("duplicate option in selection")
	ErrNoOptions          = errors.New("at least one option is required")
)
