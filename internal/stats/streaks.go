// Package stats derives summary statistics from stored match records.
package stats

import (
	"fmt"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// StreakStats holds win/loss streak information.
type StreakStats struct {
	// CurrentStreak is positive for an active win streak, negative for an
	// active loss streak, zero when the last match was a tie.
	CurrentStreak     int `json:"current_streak"`
	LongestWinStreak  int `json:"longest_win_streak"`
	LongestLossStreak int `json:"longest_loss_streak"`
}

// CalculateStreaks calculates win/loss streak statistics from a list of
// matches. Matches should be ordered oldest to newest for an accurate
// current streak. A tie breaks both streaks.
func CalculateStreaks(matches []*models.Match) *StreakStats {
	stats := &StreakStats{}
	if len(matches) == 0 {
		return stats
	}

	currentWinStreak := 0
	currentLossStreak := 0

	for _, match := range matches {
		switch {
		case match.Tie:
			currentWinStreak = 0
			currentLossStreak = 0

		case match.Won:
			currentWinStreak++
			currentLossStreak = 0
			if currentWinStreak > stats.LongestWinStreak {
				stats.LongestWinStreak = currentWinStreak
			}

		default:
			currentLossStreak++
			currentWinStreak = 0
			if currentLossStreak > stats.LongestLossStreak {
				stats.LongestLossStreak = currentLossStreak
			}
		}
	}

	if currentWinStreak > 0 {
		stats.CurrentStreak = currentWinStreak
	} else if currentLossStreak > 0 {
		stats.CurrentStreak = -currentLossStreak
	}

	return stats
}

// FormatCurrentStreak returns a human-readable string for the current streak.
func FormatCurrentStreak(streak int) string {
	if streak == 0 {
		return "No active streak"
	}
	if streak > 0 {
		if streak == 1 {
			return "1 win streak"
		}
		return fmt.Sprintf("%d win streak", streak)
	}
	absStreak := -streak
	if absStreak == 1 {
		return "1 loss streak"
	}
	return fmt.Sprintf("%d loss streak", absStreak)
}
