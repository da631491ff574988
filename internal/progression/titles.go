package progression

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kwpid/HighCard-V2/internal/game"
)

// TitleType classifies how a title was earned.
type TitleType string

const (
	TitleTypeLevel      TitleType = "level"
	TitleTypeSeason     TitleType = "season"
	TitleTypeTournament TitleType = "tournament"
	TitleTypeWins       TitleType = "wins"
)

// ErrTitleNotOwned is returned when equipping a title id that is not in
// the owned set.
var ErrTitleNotOwned = errors.New("title is not owned")

// Title is a cosmetic, ownable, equippable label.
type Title struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   TitleType `json:"type"`
	Season int       `json:"season,omitempty"`
	Color  string    `json:"color_hint,omitempty"`
	Glow   bool      `json:"glow,omitempty"`
}

// Season-win milestone thresholds checked at season end.
var winMilestones = []int{10, 50}

//go:embed titles.yaml
var titleCatalogYAML []byte

// levelTitle is one catalog entry from titles.yaml.
type levelTitle struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	Color string `yaml:"color"`
	Glow  bool   `yaml:"glow"`
}

var levelTitleCatalog = mustLoadLevelTitles()

func mustLoadLevelTitles() []levelTitle {
	var catalog struct {
		Titles []levelTitle `yaml:"titles"`
	}
	if err := yaml.Unmarshal(titleCatalogYAML, &catalog); err != nil {
		panic(fmt.Sprintf("progression: invalid embedded title catalog: %v", err))
	}
	sort.Slice(catalog.Titles, func(i, j int) bool {
		return catalog.Titles[i].Level < catalog.Titles[j].Level
	})
	return catalog.Titles
}

// OwnsTitle reports whether the profile owns the given title id.
func (p *Profile) OwnsTitle(id string) bool {
	for _, t := range p.OwnedTitles {
		if t.ID == id {
			return true
		}
	}
	return false
}

// GrantTitle adds a title to the owned set. Granting an already-owned id
// is a no-op that returns false; otherwise it inserts and returns true.
func GrantTitle(p *Profile, t Title) bool {
	if p.OwnsTitle(t.ID) {
		return false
	}
	p.OwnedTitles = append(p.OwnedTitles, t)
	return true
}

// EquipTitle sets the equipped title. An empty id unequips; an id outside
// the owned set is rejected with ErrTitleNotOwned and no state change.
func EquipTitle(p *Profile, id string) error {
	if id == "" {
		p.EquippedTitleID = ""
		return nil
	}
	if !p.OwnsTitle(id) {
		return fmt.Errorf("equip %q: %w", id, ErrTitleNotOwned)
	}
	p.EquippedTitleID = id
	return nil
}

// LevelTitlesThrough returns every catalog title whose level requirement
// the given level meets, in ascending level order. Granting all of them
// gives multi-level jumps their intermediate titles too.
func LevelTitlesThrough(level int) []Title {
	var titles []Title
	for _, lt := range levelTitleCatalog {
		if lt.Level > level {
			break
		}
		titles = append(titles, Title{
			ID:    lt.ID,
			Name:  lt.Name,
			Type:  TitleTypeLevel,
			Color: lt.Color,
			Glow:  lt.Glow,
		})
	}
	return titles
}

// SeasonRankTitle builds the deterministic season-end title for the
// highest rank reached in one game type this season.
func SeasonRankTitle(season int, gt game.GameType, r Rank) Title {
	name := fmt.Sprintf("S%d %s", season, strings.ToUpper(r.Name))
	if r.Division != "" {
		name = fmt.Sprintf("%s %s", name, r.Division)
	}
	return Title{
		ID:     fmt.Sprintf("season-s%d-%s-%s", season, gt, rankSlug(r)),
		Name:   name,
		Type:   TitleTypeSeason,
		Season: season,
		Color:  RankColor(r.Name),
		Glow:   r.Name == RankGrandChampion || r.Name == RankCardLegend,
	}
}

// WinMilestoneTitles returns the milestone titles earned by a season win
// count, one per crossed threshold.
func WinMilestoneTitles(season, seasonWins int) []Title {
	var titles []Title
	for _, threshold := range winMilestones {
		if seasonWins < threshold {
			break
		}
		titles = append(titles, Title{
			ID:     fmt.Sprintf("season-s%d-wins-%d", season, threshold),
			Name:   fmt.Sprintf("S%d VETERAN %d", season, threshold),
			Type:   TitleTypeWins,
			Season: season,
			Color:  "#10b981",
		})
	}
	return titles
}

// TournamentTitle builds the title for winning a tournament at the given
// rank tier. The third tournament win of a season produces a distinct
// starred variant with an upgraded color.
func TournamentTitle(season int, rankName string, thirdWin bool) Title {
	color := "#ffffff"
	glow := rankName == RankCardLegend || rankName == RankGrandChampion
	if thirdWin {
		switch rankName {
		case RankCardLegend:
			color = "#ff7ad9"
		case RankGrandChampion:
			color = "#ffd700"
		default:
			color = "#10b981"
		}
	}

	variant := "standard"
	name := fmt.Sprintf("S%d %s TOURNAMENT WINNER", season, strings.ToUpper(rankName))
	if thirdWin {
		variant = "variant"
		name += " ★"
	}

	return Title{
		ID:     fmt.Sprintf("tournament-s%d-%s-%s", season, rankSlug(Rank{Name: rankName}), variant),
		Name:   name,
		Type:   TitleTypeTournament,
		Season: season,
		Color:  color,
		Glow:   glow,
	}
}

func rankSlug(r Rank) string {
	slug := strings.ToLower(strings.ReplaceAll(r.Name, " ", "-"))
	if r.Division != "" {
		slug += "-" + strings.ToLower(r.Division)
	}
	return slug
}
