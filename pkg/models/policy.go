package models

import "time"

// Policy is a locally cached snapshot of an external policy catalog entry.
// The ID is the upstream policy number, not a generated uuid.
type Policy struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Region    string    `gorm:"index" json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Policy) TableName() string {
	return "policies"
}
