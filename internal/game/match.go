package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// GameType distinguishes the two supported match formats.
type GameType string

const (
	GameType1v1 GameType = "1v1"
	GameType2v2 GameType = "2v2"
)

// RoundsPerMatch is the fixed length of every match.
const RoundsPerMatch = 10

// Per-round scoring. Applied to every member of the winning/losing team;
// a tied round changes nothing.
const (
	PointsForRoundWin  = 2
	PointsForRoundLoss = -1
)

// Winner labels reported in round results and the final outcome.
const (
	WinnerTeam1 = "team1"
	WinnerTeam2 = "team2"
	WinnerTie   = "tie"
)

// Contract-violation errors. None of these advance match state.
var (
	ErrMatchEnded   = errors.New("match has already ended")
	ErrCardNotFound = errors.New("card is not in the player's hand")
	ErrCardUsed     = errors.New("card has already been played")
	ErrNoCardsLeft  = errors.New("no unused cards available")
)

// Seat is one player position in a match. Seat 0 is always the human;
// seats with a non-nil AI are resolved by the AI engine each round.
type Seat struct {
	Name  string
	Team  int // 1 or 2
	Cards []Card
	Score int
	AI    *AIPlayer
}

// RoundResult describes a single resolved round. It is handed to
// presentation layers and kept in the match history; it is never persisted.
type RoundResult struct {
	Round       int          `json:"round"`
	CardsPlayed map[int]Card `json:"cards_played"` // seat index -> card
	Winner      string       `json:"winner"`
	ScoresAfter []int        `json:"scores_after"` // by seat index
}

// Match is the ten-round state machine. Round runs 1..RoundsPerMatch and
// the match is terminal once Round exceeds RoundsPerMatch.
type Match struct {
	Type    GameType
	Seats   []Seat
	Round   int
	History []RoundResult

	rng *rand.Rand
}

// NewMatch creates a match with freshly generated hands. For 1v1 the seats
// are human (team 1) and one AI (team 2); for 2v2 the human and an AI
// teammate form team 1 while two AI opponents form team 2.
func NewMatch(gameType GameType, humanName string, opponents []*AIPlayer, rng *rand.Rand) (*Match, error) {
	var seats []Seat
	switch gameType {
	case GameType1v1:
		if len(opponents) != 1 {
			return nil, fmt.Errorf("1v1 match requires 1 AI opponent, got %d", len(opponents))
		}
		seats = []Seat{
			{Name: humanName, Team: 1},
			{Name: opponents[0].Name, Team: 2, AI: opponents[0]},
		}
	case GameType2v2:
		if len(opponents) != 3 {
			return nil, fmt.Errorf("2v2 match requires 3 AI players, got %d", len(opponents))
		}
		seats = []Seat{
			{Name: humanName, Team: 1},
			{Name: opponents[0].Name, Team: 1, AI: opponents[0]},
			{Name: opponents[1].Name, Team: 2, AI: opponents[1]},
			{Name: opponents[2].Name, Team: 2, AI: opponents[2]},
		}
	default:
		return nil, fmt.Errorf("unknown game type %q", gameType)
	}

	for i := range seats {
		seats[i].Cards = GenerateHand(rng)
	}

	return &Match{
		Type:  gameType,
		Seats: seats,
		Round: 1,
		rng:   rng,
	}, nil
}

// Ended reports whether all rounds have been resolved.
func (m *Match) Ended() bool {
	return m.Round > RoundsPerMatch
}

// AvailableCards returns the unused cards for a seat.
func (m *Match) AvailableCards(seat int) []Card {
	var available []Card
	for _, c := range m.Seats[seat].Cards {
		if !c.Used {
			available = append(available, c)
		}
	}
	return available
}

// PlayRound resolves one round. The human (seat 0) plays the card with the
// given ID; every AI seat selects its own card. The selected cards are
// marked used before scoring, so a rejected follow-up selection can never
// replay them. Returns the round result, or an error without any state
// change if the selection violates the caller contract.
func (m *Match) PlayRound(humanCardID string) (RoundResult, error) {
	if m.Ended() {
		return RoundResult{}, ErrMatchEnded
	}

	humanIdx, err := m.findCard(0, humanCardID)
	if err != nil {
		return RoundResult{}, err
	}

	// Resolve AI selections before mutating anything so an AI contract
	// violation leaves the round unplayed.
	aiPicks := make(map[int]int) // seat -> card index
	for i := range m.Seats {
		if m.Seats[i].AI == nil {
			continue
		}
		available := m.AvailableCards(i)
		pick, err := m.Seats[i].AI.ChooseCard(available)
		if err != nil {
			return RoundResult{}, fmt.Errorf("seat %d (%s): %w", i, m.Seats[i].Name, err)
		}
		idx, err := m.findCard(i, pick.ID)
		if err != nil {
			return RoundResult{}, fmt.Errorf("seat %d (%s): %w", i, m.Seats[i].Name, err)
		}
		aiPicks[i] = idx
	}

	played := make(map[int]Card, len(m.Seats))
	m.Seats[0].Cards[humanIdx].Used = true
	played[0] = m.Seats[0].Cards[humanIdx]
	for seat, idx := range aiPicks {
		m.Seats[seat].Cards[idx].Used = true
		played[seat] = m.Seats[seat].Cards[idx]
	}

	winner := m.applyScores(played)

	scores := make([]int, len(m.Seats))
	for i := range m.Seats {
		scores[i] = m.Seats[i].Score
	}

	result := RoundResult{
		Round:       m.Round,
		CardsPlayed: played,
		Winner:      winner,
		ScoresAfter: scores,
	}
	m.History = append(m.History, result)
	m.Round++

	return result, nil
}

// applyScores compares team totals for the played cards and applies the
// asymmetric round scoring to every team member.
func (m *Match) applyScores(played map[int]Card) string {
	var team1, team2 int
	for seat, card := range played {
		if m.Seats[seat].Team == 1 {
			team1 += card.Value
		} else {
			team2 += card.Value
		}
	}

	if team1 == team2 {
		return WinnerTie
	}

	winningTeam := 1
	if team2 > team1 {
		winningTeam = 2
	}
	for i := range m.Seats {
		if m.Seats[i].Team == winningTeam {
			m.Seats[i].Score += PointsForRoundWin
		} else {
			m.Seats[i].Score += PointsForRoundLoss
		}
	}
	if winningTeam == 1 {
		return WinnerTeam1
	}
	return WinnerTeam2
}

// Winner returns the terminal outcome label. It must only be called once
// Ended reports true; a tie is a valid terminal outcome.
func (m *Match) Winner() (string, error) {
	if !m.Ended() {
		return "", fmt.Errorf("match still in round %d of %d", m.Round, RoundsPerMatch)
	}

	team1, team2 := m.TeamScores()
	switch {
	case team1 > team2:
		return WinnerTeam1, nil
	case team2 > team1:
		return WinnerTeam2, nil
	default:
		return WinnerTie, nil
	}
}

// TeamScores returns the cumulative score of each team. Team members share
// the same score by construction, so the per-team value is any member's.
func (m *Match) TeamScores() (team1, team2 int) {
	for _, s := range m.Seats {
		if s.Team == 1 {
			team1 = s.Score
		} else {
			team2 = s.Score
		}
	}
	return team1, team2
}

// HumanWon reports whether the human's team won outright.
func (m *Match) HumanWon() bool {
	winner, err := m.Winner()
	return err == nil && winner == WinnerTeam1
}

// findCard locates an unused card by ID within a seat's hand without
// mutating it.
func (m *Match) findCard(seat int, cardID string) (int, error) {
	if len(m.AvailableCards(seat)) == 0 {
		return 0, ErrNoCardsLeft
	}
	for i, c := range m.Seats[seat].Cards {
		if c.ID == cardID {
			if c.Used {
				return 0, ErrCardUsed
			}
			return i, nil
		}
	}
	return 0, ErrCardNotFound
}
