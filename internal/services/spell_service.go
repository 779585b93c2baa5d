package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/fitness-challenge-api/internal/config"
	"github.com/yukikurage/fitness-challenge-api/internal/constants"
	"github.com/yukikurage/fitness-challenge-api/internal/metrics"
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSpellNotFound      = errors.New("spell not found")
	ErrSpellNotOwned      = errors.New("spell is not owned by the user")
	ErrSpellAlreadyOwned  = errors.New("spell already owned")
	ErrNotEnoughPoints    = errors.New("not enough skillpoints")
	ErrSpellNameRequired  = errors.New("spell name is required")
	ErrSpellCostNegative  = errors.New("spell cost cannot be negative")
)

// SpellService handles the spell shop: catalogue CRUD, purchases and
// activation.
type SpellService struct {
	spellRepo repository.SpellRepository
	userRepo  repository.UserRepository
	cfg       *config.Config
}

// NewSpellService creates a new SpellService.
func NewSpellService(spellRepo repository.SpellRepository, userRepo repository.UserRepository, cfg *config.Config) *SpellService {
	return &SpellService{
		spellRepo: spellRepo,
		userRepo:  userRepo,
		cfg:       cfg,
	}
}

// ListSpells returns the whole shop catalogue.
func (s *SpellService) ListSpells() ([]models.Spell, error) {
	spells, err := s.spellRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list spells: %w", err)
	}
	return spells, nil
}

// GetSpell retrieves a spell by ID.
func (s *SpellService) GetSpell(id uint64) (*models.Spell, error) {
	spell, err := s.spellRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpellNotFound
		}
		return nil, fmt.Errorf("failed to find spell: %w", err)
	}
	return spell, nil
}

// SearchSpells returns spells affordable within the given budget.
func (s *SpellService) SearchSpells(maxCost int) ([]models.Spell, error) {
	spells, err := s.spellRepo.SearchByMaxCost(maxCost)
	if err != nil {
		return nil, fmt.Errorf("failed to search spells: %w", err)
	}
	return spells, nil
}

// SpellInput represents input for creating or updating a spell.
type SpellInput struct {
	Name               string
	SkillpointRequired int
}

// CreateSpell adds a spell to the shop catalogue.
func (s *SpellService) CreateSpell(input SpellInput) (*models.Spell, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrSpellNameRequired
	}
	if input.SkillpointRequired < 0 {
		return nil, ErrSpellCostNegative
	}

	spell := &models.Spell{
		Name:               input.Name,
		SkillpointRequired: input.SkillpointRequired,
	}
	if err := s.spellRepo.Create(spell); err != nil {
		return nil, fmt.Errorf("failed to create spell: %w", err)
	}
	return spell, nil
}

// UpdateSpell edits a catalogue entry.
func (s *SpellService) UpdateSpell(id uint64, input SpellInput) (*models.Spell, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrSpellNameRequired
	}
	if input.SkillpointRequired < 0 {
		return nil, ErrSpellCostNegative
	}

	spell, err := s.GetSpell(id)
	if err != nil {
		return nil, err
	}

	spell.Name = input.Name
	spell.SkillpointRequired = input.SkillpointRequired
	if err := s.spellRepo.Update(spell); err != nil {
		return nil, fmt.Errorf("failed to update spell: %w", err)
	}
	return spell, nil
}

// DeleteSpell removes a catalogue entry.
func (s *SpellService) DeleteSpell(id uint64) error {
	if err := s.spellRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpellNotFound
		}
		return fmt.Errorf("failed to delete spell: %w", err)
	}
	return nil
}

// BuySpell purchases a spell for the user, deducting its cost.
func (s *SpellService) BuySpell(userID, spellID uint64) (*models.Spell, error) {
	spell, err := s.GetSpell(spellID)
	if err != nil {
		return nil, err
	}

	if err := s.spellRepo.Buy(userID, spellID, spell.SkillpointRequired); err != nil {
		switch {
		case errors.Is(err, repository.ErrSpellAlreadyOwned):
			return nil, ErrSpellAlreadyOwned
		case errors.Is(err, repository.ErrInsufficientPoints):
			return nil, ErrNotEnoughPoints
		default:
			return nil, fmt.Errorf("failed to buy spell: %w", err)
		}
	}
	return spell, nil
}

// ActivateSpell makes an owned spell the user's active spell with a fresh
// use counter. In the paid variant the spell's cost is deducted again on
// activation; the free variant only requires ownership. Activating while
// another spell is active overwrites it and forfeits its remaining uses.
func (s *SpellService) ActivateSpell(userID, spellID uint64) (*models.Spell, error) {
	spell, err := s.GetSpell(spellID)
	if err != nil {
		return nil, err
	}

	owns, err := s.spellRepo.Owns(userID, spellID)
	if err != nil {
		return nil, fmt.Errorf("failed to check spell ownership: %w", err)
	}
	if !owns {
		return nil, ErrSpellNotOwned
	}

	cost := spell.SkillpointRequired
	if s.cfg.SpellActivationFree {
		cost = 0
	}

	if err := s.userRepo.ActivateSpell(userID, spellID, cost, constants.SpellActivationUses); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientPoints):
			return nil, ErrNotEnoughPoints
		case errors.Is(err, repository.ErrUserMissing):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to activate spell: %w", err)
		}
	}

	metrics.SpellActivationsTotal.Inc()
	return spell, nil
}
