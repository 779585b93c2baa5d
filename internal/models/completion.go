package models

import (
	"time"
)

// UserCompletion records that a user finished a challenge exactly once.
// The composite unique index is the single source of truth for "already
// completed"; duplicate inserts surface as gorm.ErrDuplicatedKey.
type UserCompletion struct {
	ID          uint64 `gorm:"primarykey" json:"complete_id"`
	ChallengeID uint64 `gorm:"not null;uniqueIndex:idx_completions_challenge_user" json:"challenge_id"`
	UserID      uint64 `gorm:"not null;uniqueIndex:idx_completions_challenge_user" json:"user_id"`
	Completed   bool   `gorm:"not null" json:"completed"`
	ReviewAmt   int    `gorm:"not null" json:"review_amt"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreationDate time.Time `gorm:"autoCreateTime" json:"creation_date"`

	// Relations
	Challenge FitnessChallenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
