package repository

import (
	"errors"
	"fmt"
	"math"

	"github.com/yukikurage/fitness-challenge-api/internal/constants"
	"github.com/yukikurage/fitness-challenge-api/internal/database"
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateCompletion is returned when the unique constraint on
	// (challenge_id, user_id) rejects a second completion.
	ErrDuplicateCompletion = errors.New("completion repository: challenge already completed")
	// ErrCompletionUserMissing is returned when the completing user does not exist.
	ErrCompletionUserMissing = errors.New("completion repository: user not found")
	// ErrChallengeMissing is returned when the completed challenge does not exist.
	ErrChallengeMissing = errors.New("completion repository: challenge not found")
	// ErrCompletionMissing is returned when the referenced completion does not exist.
	ErrCompletionMissing = errors.New("completion repository: completion not found")
)

// floorEpsilon compensates for binary float error before flooring a point
// product, so floor(50 * 1.2) is 60 and not 59.
const floorEpsilon = 1e-9

// GormCompletionRepository is a GORM implementation of CompletionRepository
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &GormCompletionRepository{db: db}
}

// Complete executes the completion pipeline in a single transaction:
//
//  1. existence checks for user and challenge
//  2. insert-first duplicate guard: the unique index on
//     (challenge_id, user_id) is the sole authority for "already completed"
//  3. guarded spell consume: one statement decrements active_spell_uses and
//     NULLs active_spell_id when the counter reaches zero
//  4. atomic point award with SQL-side arithmetic
//
// The ledger is never read-modify-written from application code, so
// concurrent completions for the same user cannot lose points or drive the
// use counter negative.
func (r *GormCompletionRepository) Complete(params CompleteChallengeParams) (*CompleteChallengeResult, error) {
	result := &CompleteChallengeResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, params.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompletionUserMissing
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		var challenge models.FitnessChallenge
		if err := tx.First(&challenge, params.ChallengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeMissing
			}
			return fmt.Errorf("failed to find challenge: %w", err)
		}

		completion := &models.UserCompletion{
			ChallengeID: params.ChallengeID,
			UserID:      params.UserID,
			Completed:   params.Completed,
			ReviewAmt:   params.ReviewAmt,
			Notes:       params.Notes,
		}
		if err := tx.Create(completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCompletion
			}
			return fmt.Errorf("failed to insert completion: %w", err)
		}

		earned := constants.ConsolationAward
		if params.Completed {
			multiplier := 1.0
			if user.ActiveSpellID != nil && user.ActiveSpellUses > 0 {
				consumed, err := r.consumeSpellUse(tx, params.UserID)
				if err != nil {
					return err
				}
				if consumed {
					multiplier = params.MultiplierFor(*user.ActiveSpellID)
				}
			}
			earned = int(math.Floor(float64(challenge.Skillpoints)*multiplier + floorEpsilon))
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", params.UserID).
			Update("skillpoints", gorm.Expr("skillpoints + ?", earned)).Error; err != nil {
			return fmt.Errorf("failed to award skillpoints: %w", err)
		}

		var updated models.User
		if err := tx.First(&updated, params.UserID).Error; err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}

		result.Completion = completion
		result.Earned = earned
		result.User = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// consumeSpellUse burns one use of the active spell. The guard predicate and
// the CASE expression run in the same statement, so the counter cannot go
// negative and the spell reference is cleared atomically with the final
// decrement. Returns false when another writer already drained the spell.
func (r *GormCompletionRepository) consumeSpellUse(tx *gorm.DB, userID uint64) (bool, error) {
	result := tx.Model(&models.User{}).
		Where("id = ? AND active_spell_id IS NOT NULL AND active_spell_uses > 0", userID).
		Updates(map[string]interface{}{
			"active_spell_uses": gorm.Expr("active_spell_uses - 1"),
			"active_spell_id":   gorm.Expr("CASE WHEN active_spell_uses - 1 <= 0 THEN NULL ELSE active_spell_id END"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to consume spell use: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// List retrieves a page of completions together with the total count
func (r *GormCompletionRepository) List(params utils.PaginationParams) ([]models.UserCompletion, int64, error) {
	var total int64
	if err := r.db.Model(&models.UserCompletion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var completions []models.UserCompletion
	if err := r.db.Order("id ASC").
		Scopes(database.Paginate(params)).
		Find(&completions).Error; err != nil {
		return nil, 0, err
	}
	return completions, total, nil
}

// FindByID finds a completion by ID
func (r *GormCompletionRepository) FindByID(id uint64) (*models.UserCompletion, error) {
	var completion models.UserCompletion
	if err := r.db.First(&completion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompletionMissing
		}
		return nil, err
	}
	return &completion, nil
}

// ListByChallenge retrieves completions recorded against a challenge
func (r *GormCompletionRepository) ListByChallenge(challengeID uint64) ([]models.UserCompletion, error) {
	var completions []models.UserCompletion
	if err := r.db.Where("challenge_id = ?", challengeID).
		Order("id ASC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

// UpdateReview updates the notes and review stars of a completion
func (r *GormCompletionRepository) UpdateReview(id uint64, reviewAmt int, notes string) error {
	result := r.db.Model(&models.UserCompletion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"review_amt": reviewAmt,
			"notes":      notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompletionMissing
	}
	return nil
}

// Delete removes a completion
func (r *GormCompletionRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.UserCompletion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompletionMissing
	}
	return nil
}
