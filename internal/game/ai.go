package game

import (
	"math/rand"
	"sort"
)

// skillBand maps a simulated-rating floor to a play-the-best-card
// probability and a fallback pool fraction. When the AI does not play the
// top card it picks uniformly from the top poolFraction of its remaining
// cards. Thresholds follow the rank-band boundaries.
type skillBand struct {
	minRating    int
	topCardProb  float64
	poolFraction float64
}

// Ordered highest tier first. Ratings below the last band fall through to
// a pure uniform pick over every available card.
var skillBands = []skillBand{
	{minRating: 1600, topCardProb: 0.95, poolFraction: 0.2},
	{minRating: 1200, topCardProb: 0.90, poolFraction: 0.3},
	{minRating: 1000, topCardProb: 0.80, poolFraction: 0.4},
	{minRating: 800, topCardProb: 0.70, poolFraction: 0.5},
	{minRating: 600, topCardProb: 0.60, poolFraction: 0.6},
	{minRating: 400, topCardProb: 0.50, poolFraction: 1.0},
}

// AIPlayer is a locally simulated opponent. Rating drives the skill band;
// Name is cosmetic.
type AIPlayer struct {
	Name   string
	Rating int

	rng *rand.Rand
}

// NewAIPlayer creates an AI player with the given simulated rating.
func NewAIPlayer(name string, rating int, rng *rand.Rand) *AIPlayer {
	return &AIPlayer{Name: name, Rating: rating, rng: rng}
}

// ChooseCard selects which of the available cards to play this round.
// Calling it with no available cards is a caller contract violation.
func (a *AIPlayer) ChooseCard(available []Card) (Card, error) {
	if len(available) == 0 {
		return Card{}, ErrNoCardsLeft
	}

	sorted := make([]Card, len(available))
	copy(sorted, available)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	band, ok := bandForRating(a.Rating)
	if !ok {
		// Below the lowest band: uniform over everything.
		return sorted[a.rng.Intn(len(sorted))], nil
	}

	if a.rng.Float64() < band.topCardProb {
		return sorted[0], nil
	}

	poolSize := int(float64(len(sorted)) * band.poolFraction)
	if poolSize < 1 {
		poolSize = 1
	}
	return sorted[a.rng.Intn(poolSize)], nil
}

func bandForRating(rating int) (skillBand, bool) {
	for _, b := range skillBands {
		if rating >= b.minRating {
			return b, true
		}
	}
	return skillBand{}, false
}

// Name pools for simulated opponents. The high-rank pool is mixed in once
// the reference rating reaches Grand Champion territory.
var (
	regularAINames = []string{
		"Alex", "Jordan", "Casey", "Morgan", "Riley", "Avery", "Quinn", "Sage",
		"Phoenix", "River", "Skylar", "Rowan", "Ember", "Nova", "Zephyr", "Orion",
		"Blake", "Cameron", "Drew", "Finley", "Harper", "Hayden", "Jamie", "Kai",
		"Lane", "Logan", "Marley", "Parker", "Reese", "Scout", "Taylor", "Vale",
	}
	highRankAINames = []string{
		"Phantom", "Shadow", "Blaze", "Storm", "Viper", "Titan", "Nexus", "Apex",
		"Eclipse", "Quantum", "Vertex", "Matrix", "Cipher", "Vector", "Prism", "Flux",
		"Zenith", "Crimson", "Raven", "Frost", "Thunder", "Void", "Neon", "Chrome",
		"Onyx", "Pulse", "Razor", "Saber", "Talon", "Wraith", "Zorro", "Kraken",
	}
)

// highRankNameThreshold is the rating at which namier opponents appear.
const highRankNameThreshold = 1200

// GenerateOpponent creates a simulated opponent near the given reference
// rating: rating ± 100, clamped at zero. The matchmaking quality here is a
// deliberate approximation, not a statistical matcher.
func GenerateOpponent(referenceRating int, rng *rand.Rand) *AIPlayer {
	names := regularAINames
	if referenceRating >= highRankNameThreshold {
		names = append(append([]string{}, regularAINames...), highRankAINames...)
	}

	rating := referenceRating + rng.Intn(201) - 100
	if rating < 0 {
		rating = 0
	}

	return NewAIPlayer(names[rng.Intn(len(names))], rating, rng)
}

// GenerateOpponents creates n opponents for a match.
func GenerateOpponents(n, referenceRating int, rng *rand.Rand) []*AIPlayer {
	players := make([]*AIPlayer, n)
	for i := range players {
		players[i] = GenerateOpponent(referenceRating, rng)
	}
	return players
}
