package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"gorm.io/gorm"
)

// ErrSpellAlreadyOwned is returned when a user buys a spell twice.
var ErrSpellAlreadyOwned = errors.New("spell repository: spell already owned")

// GormSpellRepository is a GORM implementation of SpellRepository
type GormSpellRepository struct {
	db *gorm.DB
}

// NewSpellRepository creates a new SpellRepository
func NewSpellRepository(db *gorm.DB) SpellRepository {
	return &GormSpellRepository{db: db}
}

// Create creates a new spell
func (r *GormSpellRepository) Create(spell *models.Spell) error {
	return r.db.Create(spell).Error
}

// FindByID finds a spell by ID
func (r *GormSpellRepository) FindByID(id uint64) (*models.Spell, error) {
	var spell models.Spell
	if err := r.db.First(&spell, id).Error; err != nil {
		return nil, err
	}
	return &spell, nil
}

// List retrieves the whole catalogue
func (r *GormSpellRepository) List() ([]models.Spell, error) {
	var spells []models.Spell
	if err := r.db.Order("id ASC").Find(&spells).Error; err != nil {
		return nil, err
	}
	return spells, nil
}

// SearchByMaxCost retrieves spells costing at most max skillpoints
func (r *GormSpellRepository) SearchByMaxCost(max int) ([]models.Spell, error) {
	var spells []models.Spell
	if err := r.db.Where("skillpoint_required <= ?", max).
		Order("skillpoint_required ASC").
		Find(&spells).Error; err != nil {
		return nil, err
	}
	return spells, nil
}

// Update updates a spell
func (r *GormSpellRepository) Update(spell *models.Spell) error {
	return r.db.Save(spell).Error
}

// Delete removes a spell
func (r *GormSpellRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Spell{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Owns reports whether the user purchased the spell
func (r *GormSpellRepository) Owns(userID, spellID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserSpell{}).
		Where("user_id = ? AND spell_id = ?", userID, spellID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Buy records ownership and deducts the cost atomically. The ownership
// insert relies on the composite primary key to reject repeat purchases,
// and the deduction is guarded by the current balance.
func (r *GormSpellRepository) Buy(userID, spellID uint64, cost int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		owned := &models.UserSpell{UserID: userID, SpellID: spellID}
		if err := tx.Create(owned).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSpellAlreadyOwned
			}
			return fmt.Errorf("failed to record ownership: %w", err)
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND skillpoints >= ?", userID, cost).
			Update("skillpoints", gorm.Expr("skillpoints - ?", cost))
		if result.Error != nil {
			return fmt.Errorf("failed to deduct skillpoints: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientPoints
		}
		return nil
	})
}
