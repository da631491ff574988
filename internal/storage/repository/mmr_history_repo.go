package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// MMRHistoryRepository handles database operations for rating timeline entries.
type MMRHistoryRepository interface {
	// Create inserts a new history entry.
	Create(ctx context.Context, entry *models.MMRHistoryEntry) error

	// CreateTx inserts a new history entry within an existing transaction.
	CreateTx(ctx context.Context, tx *sql.Tx, entry *models.MMRHistoryEntry) error

	// GetHistory retrieves a user's entries for one game type within a time
	// range, oldest first.
	GetHistory(ctx context.Context, userID, gameType string, start, end time.Time) ([]*models.MMRHistoryEntry, error)

	// GetLatest retrieves the most recent entry for a user and game type.
	// Returns ErrNotFound when the user has no recorded history.
	GetLatest(ctx context.Context, userID, gameType string) (*models.MMRHistoryEntry, error)
}

type mmrHistoryRepository struct {
	db *sql.DB
}

// NewMMRHistoryRepository creates a new MMR history repository.
func NewMMRHistoryRepository(db *sql.DB) MMRHistoryRepository {
	return &mmrHistoryRepository{db: db}
}

const insertMMRHistoryQuery = `
	INSERT INTO mmr_history (user_id, game_type, mmr, rank_name, division, season, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (r *mmrHistoryRepository) Create(ctx context.Context, entry *models.MMRHistoryEntry) error {
	_, err := r.db.ExecContext(ctx, insertMMRHistoryQuery, mmrHistoryArgs(entry)...)
	if err != nil {
		return fmt.Errorf("failed to create mmr history entry: %w", err)
	}
	return nil
}

func (r *mmrHistoryRepository) CreateTx(ctx context.Context, tx *sql.Tx, entry *models.MMRHistoryEntry) error {
	_, err := tx.ExecContext(ctx, insertMMRHistoryQuery, mmrHistoryArgs(entry)...)
	if err != nil {
		return fmt.Errorf("failed to create mmr history entry: %w", err)
	}
	return nil
}

func mmrHistoryArgs(entry *models.MMRHistoryEntry) []any {
	recordedAt := entry.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	return []any{
		entry.UserID,
		entry.GameType,
		entry.MMR,
		entry.RankName,
		entry.Division,
		entry.Season,
		recordedAt,
	}
}

func (r *mmrHistoryRepository) GetHistory(ctx context.Context, userID, gameType string, start, end time.Time) ([]*models.MMRHistoryEntry, error) {
	query := `
		SELECT id, user_id, game_type, mmr, rank_name, division, season, recorded_at
		FROM mmr_history
		WHERE user_id = ? AND game_type = ? AND recorded_at >= ? AND recorded_at <= ?
		ORDER BY recorded_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, gameType, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query mmr history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*models.MMRHistoryEntry
	for rows.Next() {
		var e models.MMRHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.GameType, &e.MMR, &e.RankName, &e.Division, &e.Season, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mmr history entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mmr history: %w", err)
	}
	return entries, nil
}

func (r *mmrHistoryRepository) GetLatest(ctx context.Context, userID, gameType string) (*models.MMRHistoryEntry, error) {
	query := `
		SELECT id, user_id, game_type, mmr, rank_name, division, season, recorded_at
		FROM mmr_history
		WHERE user_id = ? AND game_type = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`

	var e models.MMRHistoryEntry
	err := r.db.QueryRowContext(ctx, query, userID, gameType).Scan(
		&e.ID, &e.UserID, &e.GameType, &e.MMR, &e.RankName, &e.Division, &e.Season, &e.RecordedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mmr history for %s/%s: %w", userID, gameType, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest mmr history entry: %w", err)
	}
	return &e, nil
}
