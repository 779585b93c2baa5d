package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"github.com/yukikurage/fitness-challenge-api/internal/utils"
	"gorm.io/gorm"
)

var ErrUsernameRequired = errors.New("username is required")

// Profile is a user enriched with derived progression data and the name of
// the currently active spell.
type Profile struct {
	User            *models.User
	ActiveSpellName *string
	Level           int
	Badges          []string
}

// UserService handles user account business logic.
type UserService struct {
	userRepo  repository.UserRepository
	spellRepo repository.SpellRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, spellRepo repository.SpellRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		spellRepo: spellRepo,
	}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetProfile returns the user together with level, badges and the active
// spell's display name.
func (s *UserService) GetProfile(id uint64) (*Profile, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		User:   user,
		Level:  utils.CalculateLevel(user.Skillpoints),
		Badges: utils.CalculateBadges(user.Skillpoints),
	}

	if user.ActiveSpellID != nil {
		spell, err := s.spellRepo.FindByID(*user.ActiveSpellID)
		if err == nil {
			profile.ActiveSpellName = &spell.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find active spell: %w", err)
		}
	}

	return profile, nil
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUserInput represents the editable account fields.
type UpdateUserInput struct {
	Username    string
	Skillpoints *int
}

// UpdateUser updates a user's username and, optionally, their skillpoints.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(input.Username)
	if input.Skillpoints != nil && *input.Skillpoints >= 0 {
		user.Skillpoints = *input.Skillpoints
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
