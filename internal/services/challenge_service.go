package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/fitness-challenge-api/internal/metrics"
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChallengeNotFound       = errors.New("challenge not found")
	ErrUserOrChallengeNotFound = errors.New("user or challenge does not exist")
	ErrNotChallengeCreator     = errors.New("only the challenge creator can perform this action")
	ErrChallengeTextRequired   = errors.New("challenge description is required")
	ErrSkillpointsRequired     = errors.New("skillpoints must be a positive integer")
	ErrAlreadyCompleted        = errors.New("you have already completed this challenge")
	ErrInvalidReviewAmount     = errors.New("review amount must be between 1 and 5")
	ErrNotesRequired           = errors.New("completion notes are required")
)

// ChallengeService handles fitness challenge business logic, including the
// completion pipeline.
type ChallengeService struct {
	challengeRepo  repository.ChallengeRepository
	completionRepo repository.CompletionRepository
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(challengeRepo repository.ChallengeRepository, completionRepo repository.CompletionRepository) *ChallengeService {
	return &ChallengeService{
		challengeRepo:  challengeRepo,
		completionRepo: completionRepo,
	}
}

// CreateChallengeInput represents input for creating a challenge.
type CreateChallengeInput struct {
	Challenge   string
	Skillpoints int
	CreatorID   uint64
}

// CreateChallenge creates a new fitness challenge.
func (s *ChallengeService) CreateChallenge(input CreateChallengeInput) (*models.FitnessChallenge, error) {
	if strings.TrimSpace(input.Challenge) == "" {
		return nil, ErrChallengeTextRequired
	}
	if input.Skillpoints <= 0 {
		return nil, ErrSkillpointsRequired
	}

	challenge := &models.FitnessChallenge{
		Challenge:   input.Challenge,
		Skillpoints: input.Skillpoints,
		CreatorID:   input.CreatorID,
	}

	if err := s.challengeRepo.Create(challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return challenge, nil
}

// GetChallenge retrieves a challenge by ID.
func (s *ChallengeService) GetChallenge(id uint64) (*models.FitnessChallenge, error) {
	challenge, err := s.challengeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to find challenge: %w", err)
	}
	return challenge, nil
}

// ListActiveChallenges returns challenges the user has not completed yet.
func (s *ChallengeService) ListActiveChallenges(userID uint64) ([]models.FitnessChallenge, error) {
	challenges, err := s.challengeRepo.ListActiveForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

// ListChallengesByCreator returns challenges a user created, newest first.
func (s *ChallengeService) ListChallengesByCreator(creatorID uint64) ([]models.FitnessChallenge, error) {
	challenges, err := s.challengeRepo.ListByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

// CountCompleted counts challenges the user has completed.
func (s *ChallengeService) CountCompleted(userID uint64) (int64, error) {
	count, err := s.challengeRepo.CountCompletedByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}

// UpdateChallengeInput represents input for updating a challenge.
type UpdateChallengeInput struct {
	Challenge   string
	Skillpoints int
	ActorID     uint64
}

// UpdateChallenge updates a challenge. Only its creator may do so.
func (s *ChallengeService) UpdateChallenge(id uint64, input UpdateChallengeInput) (*models.FitnessChallenge, error) {
	if strings.TrimSpace(input.Challenge) == "" {
		return nil, ErrChallengeTextRequired
	}
	if input.Skillpoints <= 0 {
		return nil, ErrSkillpointsRequired
	}

	challenge, err := s.GetChallenge(id)
	if err != nil {
		return nil, err
	}
	if challenge.CreatorID != input.ActorID {
		return nil, ErrNotChallengeCreator
	}

	challenge.Challenge = input.Challenge
	challenge.Skillpoints = input.Skillpoints

	if err := s.challengeRepo.Update(challenge); err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}
	return challenge, nil
}

// DeleteChallenge removes a challenge. Only its creator may do so.
func (s *ChallengeService) DeleteChallenge(id uint64, actorID uint64) error {
	challenge, err := s.GetChallenge(id)
	if err != nil {
		return err
	}
	if challenge.CreatorID != actorID {
		return ErrNotChallengeCreator
	}

	if err := s.challengeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

// CompleteChallengeInput represents one completion attempt.
type CompleteChallengeInput struct {
	UserID      uint64
	ChallengeID uint64
	Completed   bool
	ReviewAmt   int
	Notes       string
}

// CompleteChallengeResult is what a successful completion returns to the
// handler: the new record, the points earned and the updated ledger state.
type CompleteChallengeResult struct {
	Completion *models.UserCompletion
	Earned     int
	User       *models.User
}

// CompleteChallenge validates the completion input and runs the
// transactional pipeline. The spell multiplier comes from the static
// effects table; a completion submitted with completed=false earns the
// flat consolation award and leaves the active spell untouched.
func (s *ChallengeService) CompleteChallenge(input CompleteChallengeInput) (*CompleteChallengeResult, error) {
	if input.ReviewAmt < 1 || input.ReviewAmt > 5 {
		return nil, ErrInvalidReviewAmount
	}
	if strings.TrimSpace(input.Notes) == "" {
		return nil, ErrNotesRequired
	}

	result, err := s.completionRepo.Complete(repository.CompleteChallengeParams{
		UserID:        input.UserID,
		ChallengeID:   input.ChallengeID,
		Completed:     input.Completed,
		ReviewAmt:     input.ReviewAmt,
		Notes:         input.Notes,
		MultiplierFor: models.MultiplierFor,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCompletionUserMissing),
			errors.Is(err, repository.ErrChallengeMissing):
			return nil, ErrUserOrChallengeNotFound
		case errors.Is(err, repository.ErrDuplicateCompletion):
			return nil, ErrAlreadyCompleted
		default:
			return nil, fmt.Errorf("failed to complete challenge: %w", err)
		}
	}

	metrics.CompletionsTotal.Inc()
	metrics.PointsAwardedTotal.Add(float64(result.Earned))

	return &CompleteChallengeResult{
		Completion: result.Completion,
		Earned:     result.Earned,
		User:       result.User,
	}, nil
}

// ListCompletionsForChallenge returns completions recorded against a challenge.
func (s *ChallengeService) ListCompletionsForChallenge(challengeID uint64) ([]models.UserCompletion, error) {
	if _, err := s.GetChallenge(challengeID); err != nil {
		return nil, err
	}

	completions, err := s.completionRepo.ListByChallenge(challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}
