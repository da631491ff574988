// Package models defines the persisted record types shared by the
// storage repositories.
package models

import "time"

// Match is one completed match record.
type Match struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	GameType       string    `json:"game_type"`
	Ranked         bool      `json:"ranked"`
	Won            bool      `json:"won"`
	Tie            bool      `json:"tie"`
	Team1Score     int       `json:"team1_score"`
	Team2Score     int       `json:"team2_score"`
	OpponentRating *int      `json:"opponent_rating,omitempty"`
	MMRBefore      *int      `json:"mmr_before,omitempty"`
	MMRAfter       *int      `json:"mmr_after,omitempty"`
	Season         int       `json:"season"`
	PlayedAt       time.Time `json:"played_at"`
}

// MMRHistoryEntry is one point on a player's rating timeline.
type MMRHistoryEntry struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	GameType   string    `json:"game_type"`
	MMR        int       `json:"mmr"`
	RankName   string    `json:"rank_name"`
	Division   string    `json:"division"`
	Season     int       `json:"season"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SeasonalPeak records the best rating a player reached in one season
// for one game type. One row per (user, game type, season).
type SeasonalPeak struct {
	UserID    string    `json:"user_id"`
	GameType  string    `json:"game_type"`
	Season    int       `json:"season"`
	PeakMMR   int       `json:"peak_mmr"`
	RankName  string    `json:"rank_name"`
	Division  string    `json:"division"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchStats summarizes win/loss counts over a set of match records.
type MatchStats struct {
	Total  int     `json:"total"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Ties   int     `json:"ties"`
	WinPct float64 `json:"win_pct"`
}
