package progression

import (
	"math"
	"time"
)

// DefaultSeasonOneStart is when the first competitive season begins.
// Dates before it (and clock skew producing negative elapsed time) are
// pre-season, season zero.
var DefaultSeasonOneStart = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

// SoftResetMultiplier is the fraction of MMR carried through a season
// boundary.
const SoftResetMultiplier = 0.7

// SeasonNumber derives the season for a wall-clock instant: zero before
// the season-one start, otherwise one plus the number of whole calendar
// months elapsed since it. Purely a function of the date; never stored as
// independent truth.
func SeasonNumber(now, seasonOneStart time.Time) int {
	if now.Before(seasonOneStart) {
		return 0
	}
	months := (now.Year()-seasonOneStart.Year())*12 + int(now.Month()) - int(seasonOneStart.Month())
	if months < 0 {
		return 0
	}
	return months + 1
}

// SeasonTransition describes one applied season rollover, including the
// reward events to present.
type SeasonTransition struct {
	From    int
	To      int
	Rewards []RewardEvent
}

// CheckAndAdvanceSeason compares the date-derived season number against
// the profile's last observed season and, if it advanced, applies exactly
// one end-of-season pass: season reward evaluation, a soft MMR reset per
// ranked mode, and a season win counter reset. Several elapsed seasons
// still produce a single pass. Returns the unchanged profile and nil when
// no boundary was crossed.
//
// A profile that has never observed a season (Season zero, fresh account
// or one created during the pre-season) adopts the current season without
// a reset pass: there is no ended season to reward or reset out of, and
// the starting MMR must survive the first check. Callers should persist
// the returned profile whenever its Season differs from the input's, even
// with a nil transition.
func CheckAndAdvanceSeason(p Profile, now, seasonOneStart time.Time) (Profile, *SeasonTransition) {
	current := SeasonNumber(now, seasonOneStart)
	if current <= p.Season {
		return p, nil
	}

	next := p.Clone()
	next.Normalize()

	if next.Season == 0 {
		next.Season = current
		return next, nil
	}

	transition := &SeasonTransition{From: next.Season, To: current}

	// Reward the season that just ended before wiping its state.
	transition.Rewards = awardSeasonRewards(&next, next.Season)

	for _, ranked := range next.Ranked {
		softReset(ranked)
	}
	next.SeasonWins = 0
	next.TournamentStats.SeasonWins = 0
	next.Season = current

	return next, transition
}

// awardSeasonRewards grants the season-end titles: the highest rank
// reached this season per game type (derived from the season peak), and
// any crossed win milestones. Grants are idempotent, so a replayed check
// cannot double-award.
func awardSeasonRewards(p *Profile, endedSeason int) []RewardEvent {
	var events []RewardEvent

	for gt, ranked := range p.Ranked {
		if !ranked.Placed() {
			continue
		}
		title := SeasonRankTitle(endedSeason, gt, RankOf(ranked.PeakMMR))
		if GrantTitle(p, title) {
			t := title
			events = append(events, RewardEvent{Kind: RewardTitle, Title: &t})
		}
	}

	for _, title := range WinMilestoneTitles(endedSeason, p.SeasonWins) {
		if GrantTitle(p, title) {
			t := title
			events = append(events, RewardEvent{Kind: RewardTitle, Title: &t})
		}
	}

	return events
}

// softReset applies the partial rating reduction at a season boundary:
// 70% of the old rating, fresh placements, peak re-anchored to the new
// rating. The lifetime highest rank/division is deliberately untouched.
func softReset(r *RankedProfile) {
	reset := int(math.Floor(float64(r.MMR) * SoftResetMultiplier))
	if reset < 0 {
		reset = 0
	}
	r.MMR = reset
	r.PeakMMR = reset
	r.PlacementMatches = 0
	r.CurrentRank = ""
	r.Division = ""
}
