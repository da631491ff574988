package main

import (
	"fmt"

	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/progression"
)

// cardLabel formats a card for terminal display.
func cardLabel(card game.Card) string {
	if card.IsPowerUp {
		return fmt.Sprintf("%s (power-up, value %d)", game.DisplayValue(card.Value), card.Value)
	}
	return game.DisplayValue(card.Value)
}

// displayLineup announces the seats at the start of a match.
func displayLineup(match *game.Match) {
	fmt.Printf("Starting %s match:\n", match.Type)
	for _, seat := range match.Seats {
		tag := "you"
		if seat.AI != nil {
			tag = fmt.Sprintf("AI, %d MMR", seat.AI.Rating)
		}
		fmt.Printf("  Team %d: %s (%s)\n", seat.Team, seat.Name, tag)
	}
}

// displayRound prints one resolved round.
func displayRound(match *game.Match, result game.RoundResult) {
	fmt.Printf("\nRound %d results:\n", result.Round)
	for seatIdx, seat := range match.Seats {
		card, ok := result.CardsPlayed[seatIdx]
		if !ok {
			continue
		}
		fmt.Printf("  %s played %s\n", seat.Name, cardLabel(card))
	}

	switch result.Winner {
	case game.WinnerTie:
		fmt.Println("  Round tied.")
	case game.WinnerTeam1:
		fmt.Println("  Your team takes the round!")
	default:
		fmt.Println("  Opposing team takes the round.")
	}

	team1, team2 := match.TeamScores()
	fmt.Printf("  Score: %d - %d\n", team1, team2)
}

// displayRewards prints level-ups and title grants.
func displayRewards(rewards []progression.RewardEvent) {
	for _, reward := range rewards {
		switch reward.Kind {
		case progression.RewardLevelUp:
			fmt.Printf("*** Level up! You reached level %d. ***\n", reward.Level)
		case progression.RewardTitle:
			if reward.Title != nil {
				fmt.Printf("*** Title unlocked: %s ***\n", reward.Title.Name)
			}
		}
	}
}
