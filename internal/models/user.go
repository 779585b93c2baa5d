package models

import (
	"time"
)

type User struct {
	ID           uint64 `gorm:"primarykey" json:"user_id"`
	Username     string `gorm:"type:varchar(100);not null" json:"username"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Skillpoints is the ledger balance. It is only ever mutated through
	// single conditional UPDATE statements, never read-modify-write.
	Skillpoints int `gorm:"not null;default:0" json:"skillpoints"`

	// ActiveSpellUses > 0 iff ActiveSpellID is set; the reference is
	// cleared in the same statement that decrements the counter to zero.
	ActiveSpellID   *uint64 `json:"active_spell_id"`
	ActiveSpellUses int     `gorm:"not null;default:0" json:"active_spell_uses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedChallenges []FitnessChallenge `gorm:"foreignKey:CreatorID" json:"-"`
	Completions       []UserCompletion   `gorm:"foreignKey:UserID" json:"-"`
	OwnedSpells       []UserSpell        `gorm:"foreignKey:UserID" json:"-"`
}
