package progression

import (
	"github.com/kwpid/HighCard-V2/internal/game"
)

// GameStats are the per-game-type win/loss counters kept for both casual
// and ranked play.
type GameStats struct {
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	GamesPlayed int `json:"games_played"`
}

// RankedProfile is the competitive state for one game type. CurrentRank
// and Division are always the pure derivation RankOf(MMR) once placements
// are complete, and empty during the placement window. HighestRank and
// HighestDivision are lifetime records and survive season resets.
type RankedProfile struct {
	GameStats
	MMR              int    `json:"mmr"`
	CurrentRank      string `json:"current_rank,omitempty"`
	Division         string `json:"division,omitempty"`
	PlacementMatches int    `json:"placement_matches"`
	PeakMMR          int    `json:"peak_mmr"`
	HighestRank      string `json:"highest_rank,omitempty"`
	HighestDivision  string `json:"highest_division,omitempty"`
}

// Placed reports whether the placement window is complete for this game
// type.
func (r *RankedProfile) Placed() bool {
	return r.PlacementMatches >= PlacementMatchesRequired
}

// Rank returns the displayed rank, or false while unranked.
func (r *RankedProfile) Rank() (Rank, bool) {
	if r.CurrentRank == "" {
		return Rank{}, false
	}
	return Rank{Name: r.CurrentRank, Division: r.Division}, true
}

// TournamentStats counts tournament outcomes. SeasonWins resets at season
// boundaries alongside the ranked season win counter.
type TournamentStats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	SeasonWins int `json:"season_wins"`
}

// Profile is the whole persisted account state: one JSON-serializable
// record per account, read at startup and rewritten after every mutation.
type Profile struct {
	Username        string                              `json:"username"`
	Casual          map[game.GameType]*GameStats        `json:"casual_stats"`
	Ranked          map[game.GameType]*RankedProfile    `json:"ranked_stats"`
	TournamentStats TournamentStats                     `json:"tournament_stats"`
	SeasonWins      int                                 `json:"season_wins"`
	Season          int                                 `json:"season"`
	Level           int                                 `json:"level"`
	XP              int                                 `json:"xp"`
	OwnedTitles     []Title                             `json:"owned_titles"`
	EquippedTitleID string                              `json:"equipped_title_id,omitempty"`
}

// NewProfile returns a fresh default profile: level one, no titles, both
// ranked modes at the starting MMR with placements ahead of them.
func NewProfile(username string) Profile {
	p := Profile{Username: username, Level: 1}
	p.Normalize()
	return p
}

// Normalize fills in anything a loaded profile is missing so that
// profiles written by older versions (or hand-edited ones) load with
// defaults instead of failing: absent maps, absent ranked entries, level
// out of sync with XP.
func (p *Profile) Normalize() {
	if p.Casual == nil {
		p.Casual = make(map[game.GameType]*GameStats, 2)
	}
	if p.Ranked == nil {
		p.Ranked = make(map[game.GameType]*RankedProfile, 2)
	}
	for _, gt := range []game.GameType{game.GameType1v1, game.GameType2v2} {
		if p.Casual[gt] == nil {
			p.Casual[gt] = &GameStats{}
		}
		if p.Ranked[gt] == nil {
			p.Ranked[gt] = &RankedProfile{MMR: StartingMMR}
		}
	}
	if p.XP < 0 {
		p.XP = 0
	}
	p.Level = LevelOf(p.XP)
}

// Clone deep-copies the profile so pure update functions can return a new
// value without aliasing the caller's maps and slices.
func (p Profile) Clone() Profile {
	out := p
	out.Casual = make(map[game.GameType]*GameStats, len(p.Casual))
	for gt, s := range p.Casual {
		cp := *s
		out.Casual[gt] = &cp
	}
	out.Ranked = make(map[game.GameType]*RankedProfile, len(p.Ranked))
	for gt, r := range p.Ranked {
		cp := *r
		out.Ranked[gt] = &cp
	}
	out.OwnedTitles = make([]Title, len(p.OwnedTitles))
	copy(out.OwnedTitles, p.OwnedTitles)
	return out
}

// TotalWins sums wins across every mode and game type.
func (p *Profile) TotalWins() int {
	total := p.TournamentStats.Wins
	for _, s := range p.Casual {
		total += s.Wins
	}
	for _, r := range p.Ranked {
		total += r.Wins
	}
	return total
}

// HighestMMR returns the higher current rating of the two ranked modes.
func (p *Profile) HighestMMR() int {
	highest := 0
	for _, r := range p.Ranked {
		if r.MMR > highest {
			highest = r.MMR
		}
	}
	return highest
}
