package repository

import (
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether a user already claimed the
	// given username or email
	ExistsByUsernameOrEmail(username, email string) (bool, error)

	// List retrieves all users
	List() ([]models.User, error)

	// Update updates a user's editable fields
	Update(user *models.User) error

	// Delete removes a user
	Delete(id uint64) error

	// ActivateSpell sets the user's active spell with the given number of
	// uses, deducting cost from the balance in the same guarded statement.
	// Returns ErrInsufficientPoints when the balance cannot cover the cost.
	// Any previously active spell is overwritten without refund.
	ActivateSpell(userID, spellID uint64, cost, uses int) error
}

// ChallengeRepository defines the interface for fitness challenge data access
type ChallengeRepository interface {
	// Create creates a new challenge
	Create(challenge *models.FitnessChallenge) error

	// FindByID finds a challenge by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.FitnessChallenge, error)

	// ListByCreator retrieves challenges created by a user
	ListByCreator(creatorID uint64) ([]models.FitnessChallenge, error)

	// ListActiveForUser retrieves challenges the user has not completed yet
	ListActiveForUser(userID uint64) ([]models.FitnessChallenge, error)

	// CountCompletedByUser counts challenges the user completed
	CountCompletedByUser(userID uint64) (int64, error)

	// Update updates a challenge
	Update(challenge *models.FitnessChallenge) error

	// Delete removes a challenge
	Delete(id uint64) error
}

// CompleteChallengeParams carries one completion attempt through the
// transactional pipeline.
type CompleteChallengeParams struct {
	UserID      uint64
	ChallengeID uint64
	Completed   bool
	ReviewAmt   int
	Notes       string

	// MultiplierFor resolves the point multiplier for the user's active
	// spell. Injected so gameplay rules stay out of the storage layer.
	MultiplierFor func(spellID uint64) float64
}

// CompleteChallengeResult is the outcome of a successful completion.
type CompleteChallengeResult struct {
	Completion *models.UserCompletion
	Earned     int
	User       *models.User
}

// CompletionRepository defines the interface for completion data access
type CompletionRepository interface {
	// Complete runs the whole completion pipeline in one transaction:
	// existence checks, the insert-first duplicate guard, the guarded
	// spell consume, and the atomic point award.
	Complete(params CompleteChallengeParams) (*CompleteChallengeResult, error)

	// List retrieves a page of completions together with the total count
	List(params utils.PaginationParams) ([]models.UserCompletion, int64, error)

	// FindByID finds a completion by ID
	FindByID(id uint64) (*models.UserCompletion, error)

	// ListByChallenge retrieves completions recorded against a challenge
	ListByChallenge(challengeID uint64) ([]models.UserCompletion, error)

	// UpdateReview updates the notes and review stars of a completion
	UpdateReview(id uint64, reviewAmt int, notes string) error

	// Delete removes a completion
	Delete(id uint64) error
}

// SpellRepository defines the interface for spell shop data access
type SpellRepository interface {
	// Create creates a new spell
	Create(spell *models.Spell) error

	// FindByID finds a spell by ID
	FindByID(id uint64) (*models.Spell, error)

	// List retrieves the whole catalogue
	List() ([]models.Spell, error)

	// SearchByMaxCost retrieves spells costing at most max skillpoints
	SearchByMaxCost(max int) ([]models.Spell, error)

	// Update updates a spell
	Update(spell *models.Spell) error

	// Delete removes a spell
	Delete(id uint64) error

	// Owns reports whether the user purchased the spell
	Owns(userID, spellID uint64) (bool, error)

	// Buy records ownership and deducts the cost in one transaction.
	// Returns ErrSpellAlreadyOwned or ErrInsufficientPoints.
	Buy(userID, spellID uint64, cost int) error
}

// ReviewRepository defines the interface for app review data access
type ReviewRepository interface {
	Create(review *models.Review) error
	List() ([]models.Review, error)
	FindByID(id uint64) (*models.Review, error)
	Update(review *models.Review) error
	Delete(id uint64) error
}
