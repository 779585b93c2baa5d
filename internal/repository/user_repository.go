package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientPoints is returned when a guarded skillpoint deduction
	// matches no row because the balance is too low.
	ErrInsufficientPoints = errors.New("user repository: insufficient skillpoints")
	// ErrUserMissing is returned when a ledger operation references a user
	// that does not exist.
	ErrUserMissing = errors.New("user repository: user not found")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether a user already claimed the given
// username or email
func (r *GormUserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves all users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates a user's editable fields
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user
func (r *GormUserRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActivateSpell sets the active spell and deducts its cost in one guarded
// statement. The skillpoints >= cost predicate makes the deduction safe under
// concurrent ledger writes; a zero cost (free-activation variant) passes the
// guard trivially. A previously active spell is overwritten without refunding
// its remaining uses.
func (r *GormUserRepository) ActivateSpell(userID, spellID uint64, cost, uses int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserMissing
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND skillpoints >= ?", userID, cost).
			Updates(map[string]interface{}{
				"skillpoints":       gorm.Expr("skillpoints - ?", cost),
				"active_spell_id":   spellID,
				"active_spell_uses": uses,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to activate spell: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientPoints
		}
		return nil
	})
}
