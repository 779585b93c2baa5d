package repository

import (
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"gorm.io/gorm"
)

// GormChallengeRepository is a GORM implementation of ChallengeRepository
type GormChallengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &GormChallengeRepository{db: db}
}

// Create creates a new challenge
func (r *GormChallengeRepository) Create(challenge *models.FitnessChallenge) error {
	return r.db.Create(challenge).Error
}

// FindByID finds a challenge by ID with optional preloading
func (r *GormChallengeRepository) FindByID(id uint64, preload ...string) (*models.FitnessChallenge, error) {
	var challenge models.FitnessChallenge
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&challenge, id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ListByCreator retrieves challenges created by a user, newest first
func (r *GormChallengeRepository) ListByCreator(creatorID uint64) ([]models.FitnessChallenge, error) {
	var challenges []models.FitnessChallenge
	if err := r.db.Where("creator_id = ?", creatorID).
		Order("id DESC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

// ListActiveForUser retrieves challenges the user has not completed yet
func (r *GormChallengeRepository) ListActiveForUser(userID uint64) ([]models.FitnessChallenge, error) {
	completedSubQuery := r.db.Model(&models.UserCompletion{}).
		Select("challenge_id").
		Where("user_id = ?", userID)

	var challenges []models.FitnessChallenge
	if err := r.db.Where("id NOT IN (?)", completedSubQuery).
		Order("id ASC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

// CountCompletedByUser counts challenges the user completed
func (r *GormChallengeRepository) CountCompletedByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserCompletion{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// Update updates a challenge
func (r *GormChallengeRepository) Update(challenge *models.FitnessChallenge) error {
	return r.db.Save(challenge).Error
}

// Delete removes a challenge
func (r *GormChallengeRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.FitnessChallenge{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
