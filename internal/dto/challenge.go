package dto

import (
	"time"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
)

// ChallengeDTO represents a fitness challenge in API responses
type ChallengeDTO struct {
	ID          uint64    `json:"challenge_id"`
	Challenge   string    `json:"challenge"`
	Skillpoints int       `json:"skillpoints"`
	CreatorID   uint64    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	Creator     *UserDTO  `json:"creator,omitempty"`
}

// CompletionDTO represents a completion record in API responses
type CompletionDTO struct {
	ID           uint64    `json:"complete_id"`
	ChallengeID  uint64    `json:"challenge_id"`
	UserID       uint64    `json:"user_id"`
	Completed    bool      `json:"completed"`
	ReviewAmt    int       `json:"review_amt"`
	Notes        string    `json:"notes"`
	CreationDate time.Time `json:"creation_date"`
}

// CompletionResultDTO is the response to a successful completion: the new
// record plus the points earned and the resulting balance.
type CompletionResultDTO struct {
	Completion  CompletionDTO `json:"completion"`
	Earned      int           `json:"earned"`
	Skillpoints int           `json:"skillpoints"`
}

// ToChallengeDTO converts a FitnessChallenge model to ChallengeDTO
func ToChallengeDTO(challenge models.FitnessChallenge) ChallengeDTO {
	dto := ChallengeDTO{
		ID:          challenge.ID,
		Challenge:   challenge.Challenge,
		Skillpoints: challenge.Skillpoints,
		CreatorID:   challenge.CreatorID,
		CreatedAt:   challenge.CreatedAt,
	}

	// Include creator if preloaded
	if challenge.Creator.ID != 0 {
		creator := ToUserDTO(challenge.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToChallengeDTOs converts a slice of challenges
func ToChallengeDTOs(challenges []models.FitnessChallenge) []ChallengeDTO {
	dtos := make([]ChallengeDTO, len(challenges))
	for i, challenge := range challenges {
		dtos[i] = ToChallengeDTO(challenge)
	}
	return dtos
}

// ToCompletionDTO converts a UserCompletion model to CompletionDTO
func ToCompletionDTO(completion models.UserCompletion) CompletionDTO {
	return CompletionDTO{
		ID:           completion.ID,
		ChallengeID:  completion.ChallengeID,
		UserID:       completion.UserID,
		Completed:    completion.Completed,
		ReviewAmt:    completion.ReviewAmt,
		Notes:        completion.Notes,
		CreationDate: completion.CreationDate,
	}
}

// ToCompletionDTOs converts a slice of completions
func ToCompletionDTOs(completions []models.UserCompletion) []CompletionDTO {
	dtos := make([]CompletionDTO, len(completions))
	for i, completion := range completions {
		dtos[i] = ToCompletionDTO(completion)
	}
	return dtos
}
