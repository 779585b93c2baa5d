package models

import (
	"time"
)

// Spell is a shop item; owning one lets the user activate it for a limited
// number of boosted completions.
type Spell struct {
	ID                 uint64 `gorm:"primarykey" json:"spell_id"`
	Name               string `gorm:"type:varchar(100);not null" json:"name"`
	SkillpointRequired int    `gorm:"not null" json:"skillpoint_required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSpell is the ownership ledger row linking a user to a purchased spell.
type UserSpell struct {
	UserID  uint64 `gorm:"primarykey" json:"user_id"`
	SpellID uint64 `gorm:"primarykey" json:"spell_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Spell Spell `gorm:"foreignKey:SpellID" json:"spell,omitempty"`
}
