package progression

import "math"

// XP gain components per finished match.
const (
	xpBasePlay    = 5
	xpWinBonus    = 15
	xpRankedBonus = 5
	xpTeamBonus   = 3
)

// ReqXP returns the XP required to advance from the given level to the
// next: a geometric curve of floor(10 * 1.25^(level-1)).
func ReqXP(level int) int {
	if level <= 1 {
		return 10
	}
	return int(math.Floor(10 * math.Pow(1.25, float64(level-1))))
}

// TotalReqXP returns the cumulative XP required to reach a level from
// level one. TotalReqXP(1) is zero.
func TotalReqXP(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += ReqXP(l)
	}
	return total
}

// LevelOf derives the level for a lifetime XP total: the largest level
// whose cumulative requirement the total meets. Monotonic in xp and never
// below one.
func LevelOf(xp int) int {
	level := 1
	total := 0
	for {
		next := total + ReqXP(level)
		if xp < next {
			return level
		}
		total = next
		level++
	}
}

// XPGain computes the XP awarded for one finished match.
func XPGain(won, ranked, teamMode bool) int {
	gain := xpBasePlay
	if won {
		gain += xpWinBonus
	}
	if ranked {
		gain += xpRankedBonus
	}
	if teamMode {
		gain += xpTeamBonus
	}
	return gain
}
