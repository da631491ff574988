package events

import (
	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/progression"
)

// Event type identifiers.
const (
	TypeRoundResolved  = "round:resolved"
	TypeMatchCompleted = "match:completed"
	TypeRewardGranted  = "reward:granted"
	TypeSeasonRolled   = "season:rolled"
)

// RoundResolvedEvent carries one resolved round to presentation layers.
type RoundResolvedEvent struct {
	Result game.RoundResult `json:"result"`
}

// MatchCompletedEvent is sent once a match reaches its terminal state.
type MatchCompletedEvent struct {
	GameType game.GameType `json:"game_type"`
	Ranked   bool          `json:"ranked"`
	Winner   string        `json:"winner"`
	Team1    int           `json:"team1_score"`
	Team2    int           `json:"team2_score"`
	MMRDelta int           `json:"mmr_delta,omitempty"`
}

// RewardGrantedEvent carries one reward (level-up or title) for on-screen
// presentation. Rewards are queued by the caller draining the progression
// engine's returned events.
type RewardGrantedEvent struct {
	Reward progression.RewardEvent `json:"reward"`
}

// SeasonRolledEvent is sent when a season boundary check applied a reset.
type SeasonRolledEvent struct {
	From int `json:"from"`
	To   int `json:"to"`
}
