package progression

import (
	"github.com/kwpid/HighCard-V2/internal/game"
)

// RewardKind tags outbound reward events.
type RewardKind string

const (
	RewardLevelUp RewardKind = "level_up"
	RewardTitle   RewardKind = "title"
)

// RewardEvent is an outbound notification produced by a progression
// update. The engine never touches presentation state; callers drain
// these events into whatever surface shows them.
type RewardEvent struct {
	Kind  RewardKind `json:"kind"`
	Level int        `json:"level,omitempty"`
	Title *Title     `json:"title,omitempty"`
}

// MatchOutcome is the finished-match summary consumed by
// ApplyMatchResult. OpponentRating is the average opposing rating for
// ranked play; nil falls back to treating the opponent as equal-rated.
type MatchOutcome struct {
	GameType       game.GameType
	Ranked         bool
	Won            bool
	OpponentRating *int
}

// ApplyMatchResult folds one finished match into a profile. It is a pure
// update: the input profile is not mutated, and the returned profile is
// internally consistent (level matches XP, rank matches MMR, peaks are
// monotonic). Persistence is the caller's explicit side effect.
func ApplyMatchResult(p Profile, out MatchOutcome) (Profile, []RewardEvent) {
	next := p.Clone()
	next.Normalize()

	events := applyXP(&next, out)

	if !out.Ranked {
		stats := next.Casual[out.GameType]
		stats.GamesPlayed++
		if out.Won {
			stats.Wins++
		} else {
			stats.Losses++
		}
		return next, events
	}

	ranked := next.Ranked[out.GameType]
	ranked.GamesPlayed++
	if out.Won {
		ranked.Wins++
		next.SeasonWins++
	} else {
		ranked.Losses++
	}

	if !ranked.Placed() {
		applyPlacementMatch(ranked, out.Won)
	} else {
		applyRatedMatch(ranked, out)
	}

	trackPeaks(ranked)

	return next, events
}

// ApplyTieResult folds a tied match into a profile. Ties grant the
// participation XP (no win bonus) and count as a game played, but leave
// win/loss counters, MMR and placements untouched.
func ApplyTieResult(p Profile, gameType game.GameType, ranked bool) (Profile, []RewardEvent) {
	next := p.Clone()
	next.Normalize()

	events := applyXP(&next, MatchOutcome{GameType: gameType, Ranked: ranked})

	if ranked {
		next.Ranked[gameType].GamesPlayed++
	} else {
		next.Casual[gameType].GamesPlayed++
	}
	return next, events
}

// applyXP adds the match XP, recomputes the level, and grants any level
// titles now in reach (catch-up: a multi-level jump grants every
// intermediate title).
func applyXP(p *Profile, out MatchOutcome) []RewardEvent {
	var events []RewardEvent

	before := p.Level
	p.XP += XPGain(out.Won, out.Ranked, out.GameType == game.GameType2v2)
	p.Level = LevelOf(p.XP)
	if p.Level > before {
		events = append(events, RewardEvent{Kind: RewardLevelUp, Level: p.Level})
	}

	for _, t := range LevelTitlesThrough(p.Level) {
		title := t
		if GrantTitle(p, title) {
			events = append(events, RewardEvent{Kind: RewardTitle, Title: &title})
		}
	}

	return events
}

// applyPlacementMatch moves a profile through its calibration window with
// flat deltas. Completing the fifth placement reveals the derived rank.
func applyPlacementMatch(r *RankedProfile, won bool) {
	r.PlacementMatches++
	r.MMR += PlacementDelta(won)
	if r.MMR < 0 {
		r.MMR = 0
	}

	if r.Placed() {
		rank := RankOf(r.MMR)
		r.CurrentRank = rank.Name
		r.Division = rank.Division
		if r.PeakMMR == 0 {
			r.PeakMMR = r.MMR
		}
	}
}

// applyRatedMatch performs the Elo-style post-placement update and
// re-derives the displayed rank from the new rating.
func applyRatedMatch(r *RankedProfile, out MatchOutcome) {
	opponent := r.MMR
	if out.OpponentRating != nil {
		opponent = *out.OpponentRating
	}

	r.MMR += EloDelta(r.MMR, opponent, out.Won)
	if r.MMR < 0 {
		r.MMR = 0
	}

	rank := RankOf(r.MMR)
	r.CurrentRank = rank.Name
	r.Division = rank.Division
}

// trackPeaks maintains the season peak (monotonic within a season) and
// the lifetime highest rank/division (never demoted, never reset).
func trackPeaks(r *RankedProfile) {
	if r.MMR > r.PeakMMR {
		r.PeakMMR = r.MMR
	}

	if r.CurrentRank == "" {
		return
	}
	current := Rank{Name: r.CurrentRank, Division: r.Division}
	if r.HighestRank == "" {
		r.HighestRank = current.Name
		r.HighestDivision = current.Division
		return
	}
	highest := Rank{Name: r.HighestRank, Division: r.HighestDivision}
	if CompareRanks(current, highest) > 0 {
		r.HighestRank = current.Name
		r.HighestDivision = current.Division
	}
}

// ApplyTournamentResult folds a finished tournament into the profile and
// grants the winner title. The third tournament win of a season earns the
// starred variant.
func ApplyTournamentResult(p Profile, won bool, season int, rankName string) (Profile, []RewardEvent) {
	next := p.Clone()
	next.Normalize()

	var events []RewardEvent
	if !won {
		next.TournamentStats.Losses++
		return next, events
	}

	thirdWin := next.TournamentStats.SeasonWins >= 2
	next.TournamentStats.Wins++
	next.TournamentStats.SeasonWins++

	title := TournamentTitle(season, rankName, thirdWin)
	if GrantTitle(&next, title) {
		events = append(events, RewardEvent{Kind: RewardTitle, Title: &title})
	}

	return next, events
}
