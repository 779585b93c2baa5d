package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateLevel(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{600, 7},
		{-10, 1},
	}

	for _, tc := range cases {
		require.Equal(t, tc.level, CalculateLevel(tc.points), "points=%d", tc.points)
	}
}

func TestCalculateBadges(t *testing.T) {
	cases := []struct {
		points int
		badges []string
	}{
		{0, []string{}},
		{49, []string{}},
		{50, []string{"Beginner"}},
		{150, []string{"Beginner", "Consistent"}},
		{300, []string{"Beginner", "Consistent", "Challenger"}},
		{600, []string{"Beginner", "Consistent", "Challenger", "Wellness Master"}},
		{10000, []string{"Beginner", "Consistent", "Challenger", "Wellness Master"}},
	}

	for _, tc := range cases {
		require.Equal(t, tc.badges, CalculateBadges(tc.points), "points=%d", tc.points)
	}
}
