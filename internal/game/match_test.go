package game

import (
	"errors"
	"math/rand"
	"testing"
)

// fixedMatch builds a match directly so round outcomes are deterministic.
// Each AI seat gets exactly one unused card per remaining round, which
// forces its pick regardless of the rng.
func fixedMatch(gameType GameType, hands map[int][]Card) *Match {
	teams := map[GameType][]int{
		GameType1v1: {1, 2},
		GameType2v2: {1, 1, 2, 2},
	}[gameType]

	seats := make([]Seat, len(teams))
	for i, team := range teams {
		seats[i] = Seat{Name: "p", Team: team, Cards: hands[i]}
		if i > 0 {
			seats[i].AI = &AIPlayer{Name: "bot", Rating: 500, rng: rand.New(rand.NewSource(int64(i)))}
		}
	}
	return &Match{Type: gameType, Seats: seats, Round: 1}
}

func card(id string, value int) Card {
	return Card{ID: id, Value: value}
}

func TestPlayRound1v1Scoring(t *testing.T) {
	m := fixedMatch(GameType1v1, map[int][]Card{
		0: {card("h1", 14)},
		1: {card("a1", 9)},
	})

	result, err := m.PlayRound("h1")
	if err != nil {
		t.Fatalf("PlayRound: %v", err)
	}

	if result.Winner != WinnerTeam1 {
		t.Errorf("winner = %q, want %q", result.Winner, WinnerTeam1)
	}
	if m.Seats[0].Score != PointsForRoundWin {
		t.Errorf("human score = %d, want %d", m.Seats[0].Score, PointsForRoundWin)
	}
	if m.Seats[1].Score != PointsForRoundLoss {
		t.Errorf("ai score = %d, want %d", m.Seats[1].Score, PointsForRoundLoss)
	}
	if m.Round != 2 {
		t.Errorf("round = %d, want 2", m.Round)
	}
	if len(m.History) != 1 {
		t.Errorf("history length = %d, want 1", len(m.History))
	}
	if !result.CardsPlayed[0].Used || result.CardsPlayed[0].ID != "h1" {
		t.Errorf("human card not recorded as played: %+v", result.CardsPlayed[0])
	}
}

func TestPlayRoundTieLeavesScores(t *testing.T) {
	m := fixedMatch(GameType1v1, map[int][]Card{
		0: {card("h1", 11)},
		1: {card("a1", 11)},
	})

	result, err := m.PlayRound("h1")
	if err != nil {
		t.Fatalf("PlayRound: %v", err)
	}

	if result.Winner != WinnerTie {
		t.Errorf("winner = %q, want %q", result.Winner, WinnerTie)
	}
	if m.Seats[0].Score != 0 || m.Seats[1].Score != 0 {
		t.Errorf("tied round changed scores: %d / %d", m.Seats[0].Score, m.Seats[1].Score)
	}
}

func TestPlayRound2v2TeamSums(t *testing.T) {
	m := fixedMatch(GameType2v2, map[int][]Card{
		0: {card("h1", 10)},
		1: {card("t1", 11)},
		2: {card("o1", 13)},
		3: {card("o2", 7)},
	})

	// Team 1 plays 10+11=21 against team 2's 13+7=20.
	result, err := m.PlayRound("h1")
	if err != nil {
		t.Fatalf("PlayRound: %v", err)
	}

	if result.Winner != WinnerTeam1 {
		t.Errorf("winner = %q, want %q", result.Winner, WinnerTeam1)
	}
	for i, want := range []int{PointsForRoundWin, PointsForRoundWin, PointsForRoundLoss, PointsForRoundLoss} {
		if m.Seats[i].Score != want {
			t.Errorf("seat %d score = %d, want %d", i, m.Seats[i].Score, want)
		}
	}
}

func TestPlayRoundRejectsUsedCard(t *testing.T) {
	m := fixedMatch(GameType1v1, map[int][]Card{
		0: {card("h1", 14), card("h2", 5)},
		1: {card("a1", 9), card("a2", 3)},
	})

	if _, err := m.PlayRound("h1"); err != nil {
		t.Fatalf("first round: %v", err)
	}

	scoreBefore := m.Seats[0].Score
	_, err := m.PlayRound("h1")
	if !errors.Is(err, ErrCardUsed) {
		t.Fatalf("replaying used card: err = %v, want ErrCardUsed", err)
	}
	if m.Round != 2 || m.Seats[0].Score != scoreBefore || len(m.History) != 1 {
		t.Error("rejected selection advanced match state")
	}
}

func TestPlayRoundRejectsUnknownCard(t *testing.T) {
	m := fixedMatch(GameType1v1, map[int][]Card{
		0: {card("h1", 14)},
		1: {card("a1", 9)},
	})

	_, err := m.PlayRound("nope")
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("err = %v, want ErrCardNotFound", err)
	}
	if m.Round != 1 || len(m.History) != 0 {
		t.Error("rejected selection advanced match state")
	}
}

func TestPlayRoundAfterEnd(t *testing.T) {
	m := fixedMatch(GameType1v1, map[int][]Card{
		0: {card("h1", 14)},
		1: {card("a1", 9)},
	})
	m.Round = RoundsPerMatch + 1

	if _, err := m.PlayRound("h1"); !errors.Is(err, ErrMatchEnded) {
		t.Fatalf("err = %v, want ErrMatchEnded", err)
	}
}

func TestNewMatchValidatesOpponentCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bots := GenerateOpponents(3, 500, rng)

	if _, err := NewMatch(GameType1v1, "me", bots, rng); err == nil {
		t.Error("1v1 with 3 opponents should fail")
	}
	if _, err := NewMatch(GameType2v2, "me", bots[:1], rng); err == nil {
		t.Error("2v2 with 1 opponent should fail")
	}
	if _, err := NewMatch(GameType("3v3"), "me", bots, rng); err == nil {
		t.Error("unknown game type should fail")
	}
}

func TestFullMatchPlaythrough(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bots := GenerateOpponents(1, 800, rng)

	m, err := NewMatch(GameType1v1, "me", bots, rng)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}

	for !m.Ended() {
		available := m.AvailableCards(0)
		if len(available) == 0 {
			t.Fatal("human ran out of cards before the match ended")
		}
		if _, err := m.PlayRound(available[0].ID); err != nil {
			t.Fatalf("round %d: %v", m.Round, err)
		}
	}

	if len(m.History) != RoundsPerMatch {
		t.Errorf("history length = %d, want %d", len(m.History), RoundsPerMatch)
	}

	winner, err := m.Winner()
	if err != nil {
		t.Fatalf("Winner: %v", err)
	}
	team1, team2 := m.TeamScores()
	switch winner {
	case WinnerTeam1:
		if team1 <= team2 {
			t.Errorf("winner team1 but scores %d vs %d", team1, team2)
		}
	case WinnerTeam2:
		if team2 <= team1 {
			t.Errorf("winner team2 but scores %d vs %d", team1, team2)
		}
	case WinnerTie:
		if team1 != team2 {
			t.Errorf("winner tie but scores %d vs %d", team1, team2)
		}
	default:
		t.Errorf("unexpected winner label %q", winner)
	}
	if m.HumanWon() != (winner == WinnerTeam1) {
		t.Error("HumanWon disagrees with Winner")
	}
}

func TestWinnerBeforeEnd(t *testing.T) {
	m := fixedMatch(GameType1v1, map[int][]Card{
		0: {card("h1", 14)},
		1: {card("a1", 9)},
	})

	if _, err := m.Winner(); err == nil {
		t.Error("Winner before match end should fail")
	}
}
