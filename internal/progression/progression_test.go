package progression

import (
	"testing"

	"github.com/kwpid/HighCard-V2/internal/game"
)

func placedProfile(mmr int) Profile {
	p := NewProfile("tester")
	ranked := p.Ranked[game.GameType1v1]
	ranked.MMR = mmr
	ranked.PeakMMR = mmr
	ranked.PlacementMatches = PlacementMatchesRequired
	rank := RankOf(mmr)
	ranked.CurrentRank = rank.Name
	ranked.Division = rank.Division
	return p
}

func TestApplyMatchResultCasual(t *testing.T) {
	p := NewProfile("tester")

	next, _ := ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Won: true})

	stats := next.Casual[game.GameType1v1]
	if stats.Wins != 1 || stats.Losses != 0 || stats.GamesPlayed != 1 {
		t.Errorf("casual stats = %+v", *stats)
	}
	if next.Ranked[game.GameType1v1].MMR != StartingMMR {
		t.Error("casual match changed ranked MMR")
	}
	if next.SeasonWins != 0 {
		t.Error("casual win counted toward season wins")
	}
	if next.XP != 20 {
		t.Errorf("XP = %d, want 20", next.XP)
	}
}

func TestApplyMatchResultDoesNotMutateInput(t *testing.T) {
	p := NewProfile("tester")

	ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: true})

	if p.XP != 0 || p.Ranked[game.GameType1v1].MMR != StartingMMR || p.Ranked[game.GameType1v1].GamesPlayed != 0 {
		t.Error("input profile was mutated")
	}
}

func TestPlacementWindow(t *testing.T) {
	p := NewProfile("tester")
	outcome := MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: true}

	for i := 0; i < PlacementMatchesRequired-1; i++ {
		p, _ = ApplyMatchResult(p, outcome)
	}

	ranked := p.Ranked[game.GameType1v1]
	if ranked.CurrentRank != "" {
		t.Errorf("rank revealed after %d placements: %q", ranked.PlacementMatches, ranked.CurrentRank)
	}
	if ranked.MMR != StartingMMR+4*50 {
		t.Errorf("MMR = %d after four placement wins", ranked.MMR)
	}

	p, _ = ApplyMatchResult(p, outcome)
	ranked = p.Ranked[game.GameType1v1]
	if !ranked.Placed() {
		t.Fatal("five placements did not complete the window")
	}
	if ranked.MMR != 700 {
		t.Errorf("MMR = %d, want 700", ranked.MMR)
	}
	if want := RankOf(700); ranked.CurrentRank != want.Name || ranked.Division != want.Division {
		t.Errorf("rank %s %s, want %v", ranked.CurrentRank, ranked.Division, want)
	}
	if ranked.PeakMMR != 700 {
		t.Errorf("PeakMMR = %d, want 700", ranked.PeakMMR)
	}
}

func TestPlacementLossStillGains(t *testing.T) {
	p := NewProfile("tester")

	next, _ := ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: false})

	ranked := next.Ranked[game.GameType1v1]
	if ranked.MMR != StartingMMR+10 {
		t.Errorf("MMR = %d, want %d", ranked.MMR, StartingMMR+10)
	}
	if ranked.Losses != 1 {
		t.Errorf("losses = %d, want 1", ranked.Losses)
	}
}

func TestRatedMatchAndPeak(t *testing.T) {
	p := placedProfile(700)

	// A post-placement loss against an equal-rated opponent (nil falls
	// back to own rating) moves MMR down but leaves the peak alone.
	next, _ := ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: false})

	ranked := next.Ranked[game.GameType1v1]
	if ranked.MMR >= 700 {
		t.Errorf("MMR = %d did not drop", ranked.MMR)
	}
	if ranked.PeakMMR != 700 {
		t.Errorf("PeakMMR = %d, want 700", ranked.PeakMMR)
	}

	// Winning back above the old peak moves it.
	for i := 0; i < 10; i++ {
		next, _ = ApplyMatchResult(next, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: true})
	}
	ranked = next.Ranked[game.GameType1v1]
	if ranked.PeakMMR <= 700 {
		t.Errorf("PeakMMR = %d did not advance past 700", ranked.PeakMMR)
	}
	if ranked.PeakMMR < ranked.MMR {
		t.Errorf("PeakMMR %d below current MMR %d", ranked.PeakMMR, ranked.MMR)
	}
}

func TestRatedMatchUsesOpponentRating(t *testing.T) {
	p := placedProfile(700)
	opponent := 900

	next, _ := ApplyMatchResult(p, MatchOutcome{
		GameType:       game.GameType1v1,
		Ranked:         true,
		Won:            true,
		OpponentRating: &opponent,
	})

	gained := next.Ranked[game.GameType1v1].MMR - 700
	evenGain := EloDelta(700, 700, true)
	if gained <= evenGain {
		t.Errorf("upset gain %d not above even-match gain %d", gained, evenGain)
	}
}

func TestHighestRankNeverDemotes(t *testing.T) {
	p := placedProfile(1000)
	p.Ranked[game.GameType1v1].HighestRank = RankChampion
	p.Ranked[game.GameType1v1].HighestDivision = DivisionIII

	// Lose down into Diamond; the lifetime highest stays Champion.
	next := p
	for i := 0; i < 5; i++ {
		next, _ = ApplyMatchResult(next, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: false})
	}

	ranked := next.Ranked[game.GameType1v1]
	if ranked.CurrentRank == RankChampion {
		t.Fatalf("setup failed: still Champion at %d MMR", ranked.MMR)
	}
	if ranked.HighestRank != RankChampion || ranked.HighestDivision != DivisionIII {
		t.Errorf("highest rank demoted to %s %s", ranked.HighestRank, ranked.HighestDivision)
	}
}

func TestSeasonWinsCountRankedOnly(t *testing.T) {
	p := NewProfile("tester")

	p, _ = ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: true})
	p, _ = ApplyMatchResult(p, MatchOutcome{GameType: game.GameType2v2, Won: true})
	p, _ = ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: false})

	if p.SeasonWins != 1 {
		t.Errorf("SeasonWins = %d, want 1", p.SeasonWins)
	}
}

func TestApplyTieResult(t *testing.T) {
	p := placedProfile(700)

	next, _ := ApplyTieResult(p, game.GameType1v1, true)

	ranked := next.Ranked[game.GameType1v1]
	if ranked.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", ranked.GamesPlayed)
	}
	if ranked.Wins != 0 || ranked.Losses != 0 {
		t.Errorf("tie changed win/loss counters: %d/%d", ranked.Wins, ranked.Losses)
	}
	if ranked.MMR != 700 {
		t.Errorf("tie changed MMR to %d", ranked.MMR)
	}
	if next.XP != 10 {
		t.Errorf("XP = %d, want participation-only 10", next.XP)
	}

	casual, _ := ApplyTieResult(p, game.GameType2v2, false)
	if casual.Casual[game.GameType2v2].GamesPlayed != 1 {
		t.Error("casual tie not counted as a game played")
	}
}

func TestLevelUpAndTitleCatchUp(t *testing.T) {
	p := NewProfile("tester")
	p.XP = 50 // level 4, one win short of level 5
	p.Normalize()

	next, events := ApplyMatchResult(p, MatchOutcome{GameType: game.GameType1v1, Ranked: true, Won: true})

	if next.Level != 5 {
		t.Fatalf("level = %d, want 5", next.Level)
	}

	var sawLevelUp, sawRookie bool
	for _, ev := range events {
		switch {
		case ev.Kind == RewardLevelUp && ev.Level == 5:
			sawLevelUp = true
		case ev.Kind == RewardTitle && ev.Title != nil && ev.Title.ID == "title_rookie":
			sawRookie = true
		}
	}
	if !sawLevelUp {
		t.Error("no level-up event for level 5")
	}
	if !sawRookie {
		t.Error("level 5 title not granted")
	}
	if !next.OwnsTitle("title_rookie") {
		t.Error("granted title missing from owned set")
	}
}

func TestApplyTournamentResult(t *testing.T) {
	p := NewProfile("tester")

	p, events := ApplyTournamentResult(p, true, 2, RankGold)
	if p.TournamentStats.Wins != 1 || p.TournamentStats.SeasonWins != 1 {
		t.Errorf("tournament stats = %+v", p.TournamentStats)
	}
	if len(events) != 1 || events[0].Kind != RewardTitle {
		t.Fatalf("events = %+v, want one title grant", events)
	}

	// Second win of the same season at the same tier is a duplicate title.
	p, events = ApplyTournamentResult(p, true, 2, RankGold)
	if len(events) != 0 {
		t.Errorf("duplicate title re-granted: %+v", events)
	}

	// The third win of a season earns the starred variant.
	p, events = ApplyTournamentResult(p, true, 2, RankGold)
	if len(events) != 1 {
		t.Fatalf("third win granted %d titles, want the starred variant", len(events))
	}
	if events[0].Title.ID == "" || events[0].Title.ID == TournamentTitle(2, RankGold, false).ID {
		t.Error("third-win title is not the starred variant")
	}

	p, events = ApplyTournamentResult(p, false, 2, RankGold)
	if p.TournamentStats.Losses != 1 || len(events) != 0 {
		t.Error("tournament loss should only count a loss")
	}
}
