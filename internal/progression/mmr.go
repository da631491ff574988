package progression

import "math"

// Ranked calibration constants.
const (
	StartingMMR              = 450
	PlacementMatchesRequired = 5

	// Flat placement deltas. Losses still gain a little so five
	// placements always move a fresh profile off its default rating.
	placementWinDelta  = 50
	placementLossDelta = 10
)

// kFactorFor returns the Elo K for a player's own current rating. Higher
// bands use a lower K, so high ratings self-stabilize.
func kFactorFor(mmr int) int {
	if mmr < 0 {
		mmr = 0
	}
	for _, b := range rankBands {
		if b.maxMMR < 0 || mmr <= b.maxMMR {
			return b.kFactor
		}
	}
	return rankBands[len(rankBands)-1].kFactor
}

// ExpectedScore is the standard Elo expectation of the player against the
// opponent rating.
func ExpectedScore(mmr, opponentMMR int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponentMMR-mmr)/400.0))
}

// EloDelta computes the post-placement MMR change for one match. When the
// rounded delta is zero it is forced to ±1 so ratings never stagnate.
func EloDelta(mmr, opponentMMR int, won bool) int {
	actual := 0.0
	if won {
		actual = 1.0
	}
	k := float64(kFactorFor(mmr))
	delta := int(math.Round(k * (actual - ExpectedScore(mmr, opponentMMR))))
	if delta == 0 {
		if won {
			return 1
		}
		return -1
	}
	return delta
}

// PlacementDelta is the flat MMR change applied during the placement
// window.
func PlacementDelta(won bool) int {
	if won {
		return placementWinDelta
	}
	return placementLossDelta
}
