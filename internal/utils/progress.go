package utils

import (
	"github.com/yukikurage/fitness-challenge-api/internal/constants"
)

// badgeThresholds in ascending point order.
var badgeThresholds = []struct {
	points int
	name   string
}{
	{50, "Beginner"},
	{150, "Consistent"},
	{300, "Challenger"},
	{600, "Wellness Master"},
}

// CalculateLevel derives the user's level from accumulated skillpoints.
func CalculateLevel(points int) int {
	if points < 0 {
		points = 0
	}
	return points/constants.LevelDivisor + 1
}

// CalculateBadges returns every badge earned at the given point total.
func CalculateBadges(points int) []string {
	badges := []string{}
	for _, threshold := range badgeThresholds {
		if points >= threshold.points {
			badges = append(badges, threshold.name)
		}
	}
	return badges
}
