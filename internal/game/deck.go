package game

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// GenerateHand produces a fresh ten-card hand: eight regular cards with
// pairwise-distinct values in [2,14] and two power-up cards with values in
// [16,18] (power-up values may repeat). The result is sorted descending by
// value for display; callers must not rely on position.
func GenerateHand(rng *rand.Rand) []Card {
	cards := make([]Card, 0, HandSize)

	seen := make(map[int]bool, RegularCardsPerHand)
	for len(cards) < RegularCardsPerHand {
		value := rng.Intn(MaxRegularValue-MinRegularValue+1) + MinRegularValue
		if seen[value] {
			continue
		}
		seen[value] = true
		cards = append(cards, Card{
			ID:    uuid.NewString(),
			Value: value,
		})
	}

	for i := 0; i < PowerUpCardsPerHand; i++ {
		cards = append(cards, Card{
			ID:        uuid.NewString(),
			Value:     rng.Intn(MaxPowerUpValue-MinPowerUpValue+1) + MinPowerUpValue,
			IsPowerUp: true,
		})
	}

	sort.Slice(cards, func(i, j int) bool { return cards[i].Value > cards[j].Value })
	return cards
}
