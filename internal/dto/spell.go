package dto

import (
	"time"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
)

// SpellDTO represents a shop spell in API responses
type SpellDTO struct {
	ID                 uint64 `json:"spell_id"`
	Name               string `json:"name"`
	SkillpointRequired int    `json:"skillpoint_required"`
	Description        string `json:"description,omitempty"`
}

// ReviewDTO represents an app review in API responses
type ReviewDTO struct {
	ID         uint64    `json:"review_id"`
	UserID     uint64    `json:"user_id"`
	ReviewAmt  int       `json:"review_amt"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToSpellDTO converts a Spell model to SpellDTO, attaching the effect
// description when the spell has an entry in the effects table.
func ToSpellDTO(spell models.Spell) SpellDTO {
	dto := SpellDTO{
		ID:                 spell.ID,
		Name:               spell.Name,
		SkillpointRequired: spell.SkillpointRequired,
	}
	if effect, ok := models.SpellEffects[spell.ID]; ok {
		dto.Description = effect.Description
	}
	return dto
}

// ToSpellDTOs converts a slice of spells
func ToSpellDTOs(spells []models.Spell) []SpellDTO {
	dtos := make([]SpellDTO, len(spells))
	for i, spell := range spells {
		dtos[i] = ToSpellDTO(spell)
	}
	return dtos
}

// ToReviewDTO converts a Review model to ReviewDTO
func ToReviewDTO(review models.Review) ReviewDTO {
	return ReviewDTO{
		ID:         review.ID,
		UserID:     review.UserID,
		ReviewAmt:  review.ReviewAmt,
		ReviewText: review.ReviewText,
		CreatedAt:  review.CreatedAt,
	}
}

// ToReviewDTOs converts a slice of reviews
func ToReviewDTOs(reviews []models.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, len(reviews))
	for i, review := range reviews {
		dtos[i] = ToReviewDTO(review)
	}
	return dtos
}
