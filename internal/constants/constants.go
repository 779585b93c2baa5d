package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// Auth constraints.
const (
	MinPasswordLength = 8
)

// Gameplay constants.
const (
	// SpellActivationUses is the number of point-earning events a freshly
	// activated spell boosts before it deactivates itself.
	SpellActivationUses = 3

	// ConsolationAward is the flat number of skillpoints granted when a
	// completion is submitted with completed=false.
	ConsolationAward = 5

	// DefaultSpellMultiplier applies to any active spell without an
	// explicit multiplier in the effects table.
	DefaultSpellMultiplier = 1.2

	// LevelDivisor: level = points/LevelDivisor + 1.
	LevelDivisor = 100
)

// Pagination limits.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
