package game

import (
	"math/rand"
	"testing"
)

func TestGenerateHandComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		hand := GenerateHand(rng)

		if len(hand) != HandSize {
			t.Fatalf("expected %d cards, got %d", HandSize, len(hand))
		}

		regulars, powerUps := 0, 0
		seenValues := make(map[int]bool)
		seenIDs := make(map[string]bool)
		for _, card := range hand {
			if card.Used {
				t.Error("new hand contains a used card")
			}
			if card.ID == "" || seenIDs[card.ID] {
				t.Errorf("card ID %q missing or duplicated", card.ID)
			}
			seenIDs[card.ID] = true

			if card.IsPowerUp {
				powerUps++
				if card.Value < MinPowerUpValue || card.Value > MaxPowerUpValue {
					t.Errorf("power-up value %d out of range", card.Value)
				}
			} else {
				regulars++
				if card.Value < MinRegularValue || card.Value > MaxRegularValue {
					t.Errorf("regular value %d out of range", card.Value)
				}
				if seenValues[card.Value] {
					t.Errorf("duplicate regular value %d", card.Value)
				}
				seenValues[card.Value] = true
			}
		}

		if regulars != RegularCardsPerHand {
			t.Errorf("expected %d regular cards, got %d", RegularCardsPerHand, regulars)
		}
		if powerUps != PowerUpCardsPerHand {
			t.Errorf("expected %d power-up cards, got %d", PowerUpCardsPerHand, powerUps)
		}
	}
}

func TestGenerateHandSortedDescending(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hand := GenerateHand(rng)

	for i := 1; i < len(hand); i++ {
		if hand[i].Value > hand[i-1].Value {
			t.Fatalf("hand not sorted descending at %d: %d after %d", i, hand[i].Value, hand[i-1].Value)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{2, "2"},
		{10, "10"},
		{11, "J"},
		{12, "Q"},
		{13, "K"},
		{14, "A"},
		{16, "PWR"},
		{18, "PWR"},
	}

	for _, tt := range tests {
		if got := DisplayValue(tt.value); got != tt.want {
			t.Errorf("DisplayValue(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
