package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/fitness-challenge-api/internal/constants"
)

func TestMultiplierFor(t *testing.T) {
	require.Equal(t, 1.2, MultiplierFor(5))
	require.Equal(t, 1.5, MultiplierFor(7))

	// Spells without a multiplier entry fall back to the default bonus
	require.Equal(t, constants.DefaultSpellMultiplier, MultiplierFor(1))
	require.Equal(t, constants.DefaultSpellMultiplier, MultiplierFor(999))
}
