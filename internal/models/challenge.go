package models

import (
	"time"
)

type FitnessChallenge struct {
	ID          uint64 `gorm:"primarykey" json:"challenge_id"`
	Challenge   string `gorm:"type:text;not null" json:"challenge"`
	Skillpoints int    `gorm:"not null" json:"skillpoints"`
	CreatorID   uint64 `gorm:"not null" json:"creator_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Creator     User             `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Completions []UserCompletion `gorm:"foreignKey:ChallengeID" json:"-"`
}
