package game

import (
	"errors"
	"math/rand"
	"testing"
)

func testHand() []Card {
	values := []int{18, 16, 14, 12, 10, 8, 6, 5, 3, 2}
	cards := make([]Card, len(values))
	for i, v := range values {
		cards[i] = Card{ID: string(rune('a' + i)), Value: v}
	}
	return cards
}

func TestChooseCardEmptyHand(t *testing.T) {
	ai := NewAIPlayer("bot", 1000, rand.New(rand.NewSource(1)))

	if _, err := ai.ChooseCard(nil); !errors.Is(err, ErrNoCardsLeft) {
		t.Fatalf("err = %v, want ErrNoCardsLeft", err)
	}
}

func TestChooseCardTopTierStaysInTopPool(t *testing.T) {
	// At 1600+ the fallback pool is the top 20% of a ten-card hand, so
	// every selection must be one of the two highest values.
	ai := NewAIPlayer("bot", 1700, rand.New(rand.NewSource(3)))
	hand := testHand()

	for i := 0; i < 500; i++ {
		pick, err := ai.ChooseCard(hand)
		if err != nil {
			t.Fatalf("ChooseCard: %v", err)
		}
		if pick.Value != 18 && pick.Value != 16 {
			t.Fatalf("top-tier AI picked value %d outside top pool", pick.Value)
		}
	}
}

func TestChooseCardBelowBandsIsUniform(t *testing.T) {
	ai := NewAIPlayer("bot", 0, rand.New(rand.NewSource(5)))
	hand := testHand()

	valid := make(map[int]bool, len(hand))
	for _, c := range hand {
		valid[c.Value] = true
	}

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		pick, err := ai.ChooseCard(hand)
		if err != nil {
			t.Fatalf("ChooseCard: %v", err)
		}
		if !valid[pick.Value] {
			t.Fatalf("picked value %d not in hand", pick.Value)
		}
		seen[pick.Value] = true
	}

	// An unbanded rating should spread picks well beyond the top cards.
	if len(seen) < 5 {
		t.Errorf("expected a broad spread of picks, saw %d distinct values", len(seen))
	}
}

func TestChooseCardSingleCard(t *testing.T) {
	ai := NewAIPlayer("bot", 1000, rand.New(rand.NewSource(7)))

	pick, err := ai.ChooseCard([]Card{{ID: "only", Value: 4}})
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if pick.ID != "only" {
		t.Errorf("picked %q, want the only card", pick.ID)
	}
}

func TestBandForRating(t *testing.T) {
	tests := []struct {
		rating      int
		wantBand    bool
		wantTopProb float64
	}{
		{0, false, 0},
		{399, false, 0},
		{400, true, 0.50},
		{599, true, 0.50},
		{600, true, 0.60},
		{1199, true, 0.80},
		{1200, true, 0.90},
		{1600, true, 0.95},
		{2500, true, 0.95},
	}

	for _, tt := range tests {
		band, ok := bandForRating(tt.rating)
		if ok != tt.wantBand {
			t.Errorf("bandForRating(%d) ok = %v, want %v", tt.rating, ok, tt.wantBand)
			continue
		}
		if ok && band.topCardProb != tt.wantTopProb {
			t.Errorf("bandForRating(%d) topCardProb = %v, want %v", tt.rating, band.topCardProb, tt.wantTopProb)
		}
	}
}

func TestGenerateOpponentRatingRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		bot := GenerateOpponent(500, rng)
		if bot.Rating < 400 || bot.Rating > 600 {
			t.Fatalf("rating %d outside reference ± 100", bot.Rating)
		}
		if bot.Name == "" {
			t.Fatal("opponent has no name")
		}
	}
}

func TestGenerateOpponentClampsAtZero(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	for i := 0; i < 200; i++ {
		if bot := GenerateOpponent(0, rng); bot.Rating < 0 {
			t.Fatalf("rating %d below zero", bot.Rating)
		}
	}
}

func TestGenerateOpponents(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	bots := GenerateOpponents(3, 900, rng)
	if len(bots) != 3 {
		t.Fatalf("got %d opponents, want 3", len(bots))
	}
	for i, bot := range bots {
		if bot == nil {
			t.Fatalf("opponent %d is nil", i)
		}
	}
}
