// Package repository provides data access layers for match and rating data.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// MatchRepository handles database operations for match records.
type MatchRepository interface {
	// Create inserts a new match into the database.
	Create(ctx context.Context, match *models.Match) error

	// CreateTx inserts a new match within an existing transaction.
	CreateTx(ctx context.Context, tx *sql.Tx, match *models.Match) error

	// GetByID retrieves a match by its ID.
	GetByID(ctx context.Context, id string) (*models.Match, error)

	// GetRecent retrieves the most recent matches for a user, newest first.
	GetRecent(ctx context.Context, userID string, limit int) ([]*models.Match, error)

	// GetBySeason retrieves all of a user's matches in one season, oldest first.
	GetBySeason(ctx context.Context, userID string, season int) ([]*models.Match, error)

	// GetStats summarizes a user's matches, optionally filtered by game type
	// (empty string matches all) and ranked flag (nil matches both).
	GetStats(ctx context.Context, userID, gameType string, ranked *bool) (*models.MatchStats, error)
}

type matchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *sql.DB) MatchRepository {
	return &matchRepository{db: db}
}

const insertMatchQuery = `
	INSERT INTO matches (
		id, user_id, game_type, ranked, won, tie,
		team1_score, team2_score, opponent_rating,
		mmr_before, mmr_after, season, played_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (r *matchRepository) Create(ctx context.Context, match *models.Match) error {
	_, err := r.db.ExecContext(ctx, insertMatchQuery, matchArgs(match)...)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *matchRepository) CreateTx(ctx context.Context, tx *sql.Tx, match *models.Match) error {
	_, err := tx.ExecContext(ctx, insertMatchQuery, matchArgs(match)...)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func matchArgs(match *models.Match) []any {
	playedAt := match.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}
	return []any{
		match.ID,
		match.UserID,
		match.GameType,
		match.Ranked,
		match.Won,
		match.Tie,
		match.Team1Score,
		match.Team2Score,
		match.OpponentRating,
		match.MMRBefore,
		match.MMRAfter,
		match.Season,
		playedAt,
	}
}

const selectMatchColumns = `
	id, user_id, game_type, ranked, won, tie,
	team1_score, team2_score, opponent_rating,
	mmr_before, mmr_after, season, played_at
`

func (r *matchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + selectMatchColumns + ` FROM matches WHERE id = ?`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (r *matchRepository) GetRecent(ctx context.Context, userID string, limit int) ([]*models.Match, error) {
	query := `
		SELECT ` + selectMatchColumns + `
		FROM matches
		WHERE user_id = ?
		ORDER BY played_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectMatches(rows)
}

func (r *matchRepository) GetBySeason(ctx context.Context, userID string, season int) ([]*models.Match, error) {
	query := `
		SELECT ` + selectMatchColumns + `
		FROM matches
		WHERE user_id = ? AND season = ?
		ORDER BY played_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectMatches(rows)
}

func (r *matchRepository) GetStats(ctx context.Context, userID, gameType string, ranked *bool) (*models.MatchStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN won = 1 AND tie = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN won = 0 AND tie = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tie = 1 THEN 1 ELSE 0 END), 0)
		FROM matches
		WHERE user_id = ?
	`
	args := []any{userID}

	if gameType != "" {
		query += ` AND game_type = ?`
		args = append(args, gameType)
	}
	if ranked != nil {
		query += ` AND ranked = ?`
		args = append(args, *ranked)
	}

	stats := &models.MatchStats{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total, &stats.Wins, &stats.Losses, &stats.Ties,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query match stats: %w", err)
	}

	decided := stats.Wins + stats.Losses
	if decided > 0 {
		stats.WinPct = float64(stats.Wins) / float64(decided) * 100
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.GameType,
		&m.Ranked,
		&m.Won,
		&m.Tie,
		&m.Team1Score,
		&m.Team2Score,
		&m.OpponentRating,
		&m.MMRBefore,
		&m.MMRAfter,
		&m.Season,
		&m.PlayedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMatches(rows *sql.Rows) ([]*models.Match, error) {
	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}
