package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CompletionsTotal counts successful challenge completions.
	CompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitness_completions_total",
		Help: "Number of challenge completions recorded.",
	})

	// PointsAwardedTotal accumulates skillpoints handed out by the
	// completion pipeline, spell bonuses included.
	PointsAwardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitness_points_awarded_total",
		Help: "Total skillpoints awarded through completions.",
	})

	// SpellActivationsTotal counts spell activations.
	SpellActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitness_spell_activations_total",
		Help: "Number of spell activations.",
	})
)
