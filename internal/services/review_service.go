package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewTextRequired = errors.New("review text is required")
	ErrNotReviewAuthor    = errors.New("only the review author can perform this action")
)

// ReviewService handles app review business logic.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
	}
}

// ReviewInput represents input for creating or updating a review.
type ReviewInput struct {
	ReviewAmt  int
	ReviewText string
}

// CreateReview records an app review for the user.
func (s *ReviewService) CreateReview(userID uint64, input ReviewInput) (*models.Review, error) {
	if input.ReviewAmt < 1 || input.ReviewAmt > 5 {
		return nil, ErrInvalidReviewAmount
	}
	if strings.TrimSpace(input.ReviewText) == "" {
		return nil, ErrReviewTextRequired
	}

	review := &models.Review{
		UserID:     userID,
		ReviewAmt:  input.ReviewAmt,
		ReviewText: input.ReviewText,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ListReviews retrieves all reviews, newest first.
func (s *ReviewService) ListReviews() ([]models.Review, error) {
	reviews, err := s.reviewRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReview edits a review. Only its author may do so.
func (s *ReviewService) UpdateReview(id, actorID uint64, input ReviewInput) (*models.Review, error) {
	if input.ReviewAmt < 1 || input.ReviewAmt > 5 {
		return nil, ErrInvalidReviewAmount
	}
	if strings.TrimSpace(input.ReviewText) == "" {
		return nil, ErrReviewTextRequired
	}

	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	if review.UserID != actorID {
		return nil, ErrNotReviewAuthor
	}

	review.ReviewAmt = input.ReviewAmt
	review.ReviewText = input.ReviewText
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// DeleteReview removes a review. Only its author may do so.
func (s *ReviewService) DeleteReview(id, actorID uint64) error {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to find review: %w", err)
	}
	if review.UserID != actorID {
		return ErrNotReviewAuthor
	}

	if err := s.reviewRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
