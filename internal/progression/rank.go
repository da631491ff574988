// Package progression maintains competitive state across matches and
// seasons: MMR and Elo updates, rank derivation, placement handling, XP
// and levels, season soft resets, and the title ledger.
package progression

// Rank names, lowest to highest.
const (
	RankBronze        = "Bronze"
	RankSilver        = "Silver"
	RankGold          = "Gold"
	RankPlatinum      = "Platinum"
	RankDiamond       = "Diamond"
	RankChampion      = "Champion"
	RankGrandChampion = "Grand Champion"
	RankCardLegend    = "Card Legend"
)

// Division names within a rank band, lowest to highest. The top band has
// no divisions.
const (
	DivisionIII = "III"
	DivisionII  = "II"
	DivisionI   = "I"
)

// Rank is a derived, human-facing tier. Division is empty for Card Legend
// and for unranked profiles.
type Rank struct {
	Name     string `json:"name"`
	Division string `json:"division,omitempty"`
}

// rankBand is one inclusive MMR range on the ladder. maxMMR < 0 marks the
// unbounded top band. kFactor is the Elo K applied to players whose own
// rating falls in the band.
type rankBand struct {
	name    string
	minMMR  int
	maxMMR  int
	color   string
	kFactor int
}

// The final band table. Earlier revisions of the game shifted these
// thresholds around; this table is the single authoritative one.
var rankBands = []rankBand{
	{RankBronze, 0, 199, "#cd7f32", 40},
	{RankSilver, 200, 399, "#c0c0c0", 36},
	{RankGold, 400, 599, "#ffd700", 32},
	{RankPlatinum, 600, 799, "#e5e4e2", 28},
	{RankDiamond, 800, 999, "#b9f2ff", 24},
	{RankChampion, 1000, 1199, "#9d4edd", 20},
	{RankGrandChampion, 1200, 1599, "#ff006e", 16},
	{RankCardLegend, 1600, -1, "#ffffff", 12},
}

var divisions = []string{DivisionIII, DivisionII, DivisionI}

// RankOf derives the rank and division for an MMR value. It is pure and
// total over mmr >= 0; negative input is treated as zero.
func RankOf(mmr int) Rank {
	if mmr < 0 {
		mmr = 0
	}
	for _, b := range rankBands {
		if b.maxMMR >= 0 && mmr > b.maxMMR {
			continue
		}
		if b.maxMMR < 0 {
			return Rank{Name: b.name}
		}
		width := b.maxMMR - b.minMMR + 1
		idx := (mmr - b.minMMR) * len(divisions) / width
		if idx >= len(divisions) {
			idx = len(divisions) - 1
		}
		return Rank{Name: b.name, Division: divisions[idx]}
	}
	return Rank{Name: RankBronze, Division: DivisionIII}
}

// RankColor returns the display color for a rank name, or white for an
// unknown name.
func RankColor(name string) string {
	for _, b := range rankBands {
		if b.name == name {
			return b.color
		}
	}
	return "#ffffff"
}

// ladderIndex returns the position of a rank name on the ladder, or -1.
func ladderIndex(name string) int {
	for i, b := range rankBands {
		if b.name == name {
			return i
		}
	}
	return -1
}

// divisionIndex returns the position of a division within its band
// (lowest first), or -1 for empty/unknown.
func divisionIndex(division string) int {
	for i, d := range divisions {
		if d == division {
			return i
		}
	}
	return -1
}

// CompareRanks orders two ranks on the ladder: negative if a is below b,
// zero if equal, positive if above. Divisions break ties within a band;
// an absent division sorts below any present one only for the non-top
// bands (the top band carries none).
func CompareRanks(a, b Rank) int {
	if ai, bi := ladderIndex(a.Name), ladderIndex(b.Name); ai != bi {
		return ai - bi
	}
	return divisionIndex(a.Division) - divisionIndex(b.Division)
}

// String renders "Gold II" style labels; division-less ranks come out
// bare.
func (r Rank) String() string {
	if r.Division == "" {
		return r.Name
	}
	return r.Name + " " + r.Division
}
