package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kwpid/HighCard-V2/internal/events"
	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/progression"
	"github.com/kwpid/HighCard-V2/internal/storage"
)

// runPlay drives one full match: queue selection, ten interactive rounds,
// progression update and persistence.
func (a *app) runPlay(args []string) error {
	gameType, ranked, err := a.parseQueue(args)
	if err != nil {
		return err
	}

	// A session can span a month boundary; roll the season before a
	// ranked match so the soft reset lands ahead of the rating update.
	if ranked {
		if err := a.checkSeason(); err != nil {
			return err
		}
	}

	profile, err := a.storage.Profiles().Load(a.ctx, a.userID, a.userID)
	if err != nil {
		return err
	}

	rankedState := profile.Ranked[gameType]
	reference := rankedState.MMR

	opponentCount := 1
	if gameType == game.GameType2v2 {
		opponentCount = 3
	}
	opponents := game.GenerateOpponents(opponentCount, reference, a.rng)

	match, err := game.NewMatch(gameType, profile.Username, opponents, a.rng)
	if err != nil {
		return err
	}

	fmt.Println()
	displayLineup(match)

	for !match.Ended() {
		card, err := a.promptCard(match)
		if err != nil {
			return err
		}

		a.thinkPause()

		result, err := match.PlayRound(card.ID)
		if err != nil {
			fmt.Printf("Invalid play: %v\n", err)
			continue
		}

		a.dispatcher.Dispatch(events.Event{
			Type:    events.TypeRoundResolved,
			Payload: events.RoundResolvedEvent{Result: result},
		})
		displayRound(match, result)
	}

	return a.finishMatch(match, profile, ranked, opponents)
}

// parseQueue resolves the game type and queue from args, prompting for
// anything missing.
func (a *app) parseQueue(args []string) (game.GameType, bool, error) {
	var gameType game.GameType
	rankedSet := false
	ranked := false

	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "1v1":
			gameType = game.GameType1v1
		case "2v2":
			gameType = game.GameType2v2
		case "ranked":
			ranked, rankedSet = true, true
		case "casual":
			ranked, rankedSet = false, true
		default:
			return "", false, fmt.Errorf("unknown option %q", arg)
		}
	}

	if gameType == "" {
		switch a.prompt("Game type [1v1/2v2]: ") {
		case "2v2":
			gameType = game.GameType2v2
		default:
			gameType = game.GameType1v1
		}
	}
	if !rankedSet {
		answer := strings.ToLower(a.prompt("Ranked? [y/N]: "))
		ranked = answer == "y" || answer == "yes"
	}

	return gameType, ranked, nil
}

// promptCard shows the human's remaining cards and reads a selection.
func (a *app) promptCard(match *game.Match) (game.Card, error) {
	available := match.AvailableCards(0)

	fmt.Printf("\nRound %d of %d. Your cards:\n", match.Round, game.RoundsPerMatch)
	for i, card := range available {
		fmt.Printf("  [%d] %s\n", i+1, cardLabel(card))
	}

	for {
		answer := a.prompt("Play which card? ")
		if answer == "" {
			continue
		}
		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(available) {
			fmt.Printf("Pick a number between 1 and %d.\n", len(available))
			continue
		}
		return available[idx-1], nil
	}
}

// thinkPause simulates the opponents considering their play.
func (a *app) thinkPause() {
	if a.thinkMax <= 0 {
		return
	}
	delay := a.thinkMin
	if spread := a.thinkMax - a.thinkMin; spread > 0 {
		delay += time.Duration(a.rng.Int63n(int64(spread)))
	}
	time.Sleep(delay)
}

// finishMatch applies progression, persists everything, and reports.
func (a *app) finishMatch(match *game.Match, profile progression.Profile, ranked bool, opponents []*game.AIPlayer) error {
	winner, err := match.Winner()
	if err != nil {
		return err
	}
	team1, team2 := match.TeamScores()
	tie := winner == game.WinnerTie
	won := match.HumanWon()

	fmt.Println()
	switch {
	case tie:
		fmt.Printf("It's a tie! Final score %d - %d.\n", team1, team2)
	case won:
		fmt.Printf("You win! Final score %d - %d.\n", team1, team2)
	default:
		fmt.Printf("You lose. Final score %d - %d.\n", team1, team2)
	}

	opponentRating := averageOpposingRating(match.Type, opponents)
	mmrBefore := profile.Ranked[match.Type].MMR

	var rewards []progression.RewardEvent
	if tie {
		profile, rewards = progression.ApplyTieResult(profile, match.Type, ranked)
	} else {
		profile, rewards = progression.ApplyMatchResult(profile, progression.MatchOutcome{
			GameType:       match.Type,
			Ranked:         ranked,
			Won:            won,
			OpponentRating: &opponentRating,
		})
	}
	mmrAfter := profile.Ranked[match.Type].MMR

	record := storage.MatchRecord{
		UserID:     a.userID,
		GameType:   string(match.Type),
		Ranked:     ranked,
		Won:        won && !tie,
		Tie:        tie,
		Team1Score: team1,
		Team2Score: team2,
		Season:     progression.SeasonNumber(time.Now().UTC(), a.seasonOne),
	}
	if ranked {
		record.OpponentRating = &opponentRating
		record.MMRBefore = &mmrBefore
		record.MMRAfter = &mmrAfter
	}

	if err := a.storage.RecordMatch(a.ctx, record, profile); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	a.dispatcher.Dispatch(events.Event{
		Type: events.TypeMatchCompleted,
		Payload: events.MatchCompletedEvent{
			GameType: match.Type,
			Ranked:   ranked,
			Winner:   winner,
			Team1:    team1,
			Team2:    team2,
			MMRDelta: mmrAfter - mmrBefore,
		},
	})

	if ranked && !tie {
		rankedState := profile.Ranked[match.Type]
		if rank, ok := rankedState.Rank(); ok {
			fmt.Printf("MMR: %d -> %d (%s)\n", mmrBefore, mmrAfter, rank)
		} else {
			fmt.Printf("Placement match %d of %d complete.\n",
				rankedState.PlacementMatches, progression.PlacementMatchesRequired)
		}
	}

	for _, reward := range rewards {
		a.dispatcher.Dispatch(events.Event{
			Type:    events.TypeRewardGranted,
			Payload: events.RewardGrantedEvent{Reward: reward},
		})
	}
	displayRewards(rewards)

	return nil
}

// averageOpposingRating averages the ratings on the opposing team.
func averageOpposingRating(gameType game.GameType, opponents []*game.AIPlayer) int {
	if gameType == game.GameType2v2 && len(opponents) == 3 {
		// opponents[0] is the teammate; seats 2 and 3 oppose.
		return (opponents[1].Rating + opponents[2].Rating) / 2
	}
	return opponents[0].Rating
}
