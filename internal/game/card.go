// Package game implements the card-duel core: hand generation, the
// ten-round match state machine, and the AI card-selection engine.
package game

import "fmt"

// Card value boundaries. Regular cards span 2..14 (14 = Ace); power-up
// cards span 16..18. The ranges are disjoint so a power-up always beats
// any regular card.
const (
	MinRegularValue = 2
	MaxRegularValue = 14
	MinPowerUpValue = 16
	MaxPowerUpValue = 18
)

// Hand composition constants.
const (
	RegularCardsPerHand = 8
	PowerUpCardsPerHand = 2
	HandSize            = RegularCardsPerHand + PowerUpCardsPerHand
)

// Card is a single playable card in a match. Once Used is set the card is
// no longer selectable for the remainder of the match.
type Card struct {
	ID        string `json:"id"`
	Value     int    `json:"value"`
	IsPowerUp bool   `json:"is_power_up"`
	Used      bool   `json:"used"`
}

// DisplayValue returns the human-facing label for a card value
// (face cards as J/Q/K/A, power-ups as PWR).
func DisplayValue(value int) string {
	switch {
	case value >= MinPowerUpValue:
		return "PWR"
	case value == 14:
		return "A"
	case value == 13:
		return "K"
	case value == 12:
		return "Q"
	case value == 11:
		return "J"
	default:
		return fmt.Sprintf("%d", value)
	}
}

// Suits used for cosmetic card display. Gameplay ignores suits entirely.
var Suits = []string{"♠", "♥", "♦", "♣"}
