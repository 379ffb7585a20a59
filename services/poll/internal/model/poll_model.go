package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PollModel struct {
	ID             string            `gorm:"type:uuid;primary_key" json:"id"`
	PostID         string            `gorm:"type:uuid;not null;uniqueIndex" json:"post_id"`
	Question       string            `gorm:"not null" json:"question"`
	ClosesAt       *time.Time        `json:"closes_at"`
	AllowsMultiple bool              `gorm:"default:false" json:"allows_multiple"`
	Options        []PollOptionModel `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (PollModel) TableName() string {
	return "polls"
}

func (p *PollModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Tally caches the number of live ballots on the option. It is only ever
// changed in the same transaction that inserts or deletes ballot rows.
type PollOptionModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PollID    string    `gorm:"type:uuid;not null;index" json:"poll_id"`
	Text      string    `gorm:"not null" json:"text"`
	Tally     int64     `gorm:"not null;default:0" json:"tally"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PollOptionModel) TableName() string {
	return "poll_options"
}

func (o *PollOptionModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

type BallotModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_ballots_user_option" json:"user_id"`
	PollID    string    `gorm:"type:uuid;not null;index" json:"poll_id"`
	OptionID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_ballots_user_option" json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (BallotModel) TableName() string {
	return "ballots"
}

func (b *BallotModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
