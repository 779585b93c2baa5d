package models

import (
	"time"
)

type Review struct {
	ID         uint64 `gorm:"primarykey" json:"review_id"`
	UserID     uint64 `gorm:"not null" json:"user_id"`
	ReviewAmt  int    `gorm:"not null" json:"review_amt"`
	ReviewText string `gorm:"type:text;not null" json:"review_text"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
