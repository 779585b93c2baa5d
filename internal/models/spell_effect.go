package models

import (
	"github.com/yukikurage/fitness-challenge-api/internal/constants"
)

// SpellEffect describes what an active spell does. Only Multiplier is
// honored by the completion pipeline; the remaining effect kinds are
// declared for the shop catalogue but currently reserved.
type SpellEffect struct {
	BonusSkillpoints           int
	ChallengeCooldownReduction int
	DoubleRewardChance         float64
	ReviveOnce                 bool
	Multiplier                 float64
	UnlockAdvanced             bool
	Description                string
}

// SpellEffects maps spell IDs to their effects. The table is static
// configuration, kept in code so the shop seed data and the gameplay rules
// cannot drift apart.
var SpellEffects = map[uint64]SpellEffect{
	1: {BonusSkillpoints: 5, Description: "Gain +5 bonus points per challenge"},
	2: {ChallengeCooldownReduction: 1, Description: "Reduces challenge cooldown"},
	3: {DoubleRewardChance: 0.2, Description: "20% chance to double rewards"},
	4: {ReviveOnce: true, Description: "Second chance on failed challenge"},
	5: {Multiplier: 1.2, Description: "20% bonus to all points"},
	6: {UnlockAdvanced: true, Description: "Unlocks advanced challenges"},
	7: {Multiplier: 1.5, Description: "50% bonus to all progress"},
}

// MultiplierFor returns the point multiplier granted by an active spell.
// Spells without an explicit multiplier entry grant the default bonus.
func MultiplierFor(spellID uint64) float64 {
	if effect, ok := SpellEffects[spellID]; ok && effect.Multiplier > 0 {
		return effect.Multiplier
	}
	return constants.DefaultSpellMultiplier
}
