package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"github.com/yukikurage/fitness-challenge-api/internal/utils"
)

var ErrCompletionNotFound = errors.New("completion not found")

// CompletionService handles standalone completion record maintenance.
// Creating completions goes through ChallengeService.CompleteChallenge;
// this service only reads and edits existing records.
type CompletionService struct {
	completionRepo repository.CompletionRepository
}

// NewCompletionService creates a new CompletionService.
func NewCompletionService(completionRepo repository.CompletionRepository) *CompletionService {
	return &CompletionService{
		completionRepo: completionRepo,
	}
}

// ListCompletions retrieves a page of completion records.
func (s *CompletionService) ListCompletions(params utils.PaginationParams) ([]models.UserCompletion, int64, error) {
	completions, total, err := s.completionRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, total, nil
}

// GetCompletion retrieves a completion by ID.
func (s *CompletionService) GetCompletion(id uint64) (*models.UserCompletion, error) {
	completion, err := s.completionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCompletionMissing) {
			return nil, ErrCompletionNotFound
		}
		return nil, fmt.Errorf("failed to find completion: %w", err)
	}
	return completion, nil
}

// UpdateCompletionInput represents the editable completion fields.
type UpdateCompletionInput struct {
	ReviewAmt int
	Notes     string
}

// UpdateCompletion edits the notes and review stars of a completion.
func (s *CompletionService) UpdateCompletion(id uint64, input UpdateCompletionInput) error {
	if input.ReviewAmt < 1 || input.ReviewAmt > 5 {
		return ErrInvalidReviewAmount
	}
	if strings.TrimSpace(input.Notes) == "" {
		return ErrNotesRequired
	}

	if err := s.completionRepo.UpdateReview(id, input.ReviewAmt, input.Notes); err != nil {
		if errors.Is(err, repository.ErrCompletionMissing) {
			return ErrCompletionNotFound
		}
		return fmt.Errorf("failed to update completion: %w", err)
	}
	return nil
}

// DeleteCompletion removes a completion record.
func (s *CompletionService) DeleteCompletion(id uint64) error {
	if err := s.completionRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrCompletionMissing) {
			return ErrCompletionNotFound
		}
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	return nil
}
