package dto

import (
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Skillpoints int    `json:"skillpoints"`
}

// ProfileDTO is the authenticated user's profile with derived progression
// fields and active spell info.
type ProfileDTO struct {
	ID              uint64   `json:"user_id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Skillpoints     int      `json:"skillpoints"`
	ActiveSpellID   *uint64  `json:"active_spell_id"`
	ActiveSpellUses int      `json:"active_spell_uses"`
	ActiveSpellName *string  `json:"active_spell_name"`
	Level           int      `json:"level"`
	Badges          []string `json:"badges"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Skillpoints: user.Skillpoints,
	}
}

// ToProfileDTO converts a service Profile to ProfileDTO
func ToProfileDTO(profile services.Profile) ProfileDTO {
	return ProfileDTO{
		ID:              profile.User.ID,
		Username:        profile.User.Username,
		Email:           profile.User.Email,
		Skillpoints:     profile.User.Skillpoints,
		ActiveSpellID:   profile.User.ActiveSpellID,
		ActiveSpellUses: profile.User.ActiveSpellUses,
		ActiveSpellName: profile.ActiveSpellName,
		Level:           profile.Level,
		Badges:          profile.Badges,
	}
}
