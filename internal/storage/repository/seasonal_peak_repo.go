package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// SeasonalPeakRepository handles database operations for per-season peak
// ratings. A peak only ever moves up within a season.
type SeasonalPeakRepository interface {
	// Upsert records a peak, keeping the higher value when a row already
	// exists for the (user, game type, season) key.
	Upsert(ctx context.Context, peak *models.SeasonalPeak) error

	// UpsertTx is Upsert within an existing transaction.
	UpsertTx(ctx context.Context, tx *sql.Tx, peak *models.SeasonalPeak) error

	// Get retrieves the peak for one user, game type and season.
	Get(ctx context.Context, userID, gameType string, season int) (*models.SeasonalPeak, error)

	// GetAllSeasons retrieves every recorded peak for a user and game type,
	// ordered by season.
	GetAllSeasons(ctx context.Context, userID, gameType string) ([]*models.SeasonalPeak, error)
}

type seasonalPeakRepository struct {
	db *sql.DB
}

// NewSeasonalPeakRepository creates a new seasonal peak repository.
func NewSeasonalPeakRepository(db *sql.DB) SeasonalPeakRepository {
	return &seasonalPeakRepository{db: db}
}

const upsertPeakQuery = `
	INSERT INTO seasonal_peaks (user_id, game_type, season, peak_mmr, rank_name, division, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_id, game_type, season) DO UPDATE SET
		peak_mmr = excluded.peak_mmr,
		rank_name = excluded.rank_name,
		division = excluded.division,
		updated_at = excluded.updated_at
	WHERE excluded.peak_mmr > seasonal_peaks.peak_mmr
`

func (r *seasonalPeakRepository) Upsert(ctx context.Context, peak *models.SeasonalPeak) error {
	_, err := r.db.ExecContext(ctx, upsertPeakQuery, peakArgs(peak)...)
	if err != nil {
		return fmt.Errorf("failed to upsert seasonal peak: %w", err)
	}
	return nil
}

func (r *seasonalPeakRepository) UpsertTx(ctx context.Context, tx *sql.Tx, peak *models.SeasonalPeak) error {
	_, err := tx.ExecContext(ctx, upsertPeakQuery, peakArgs(peak)...)
	if err != nil {
		return fmt.Errorf("failed to upsert seasonal peak: %w", err)
	}
	return nil
}

func peakArgs(peak *models.SeasonalPeak) []any {
	updatedAt := peak.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return []any{
		peak.UserID,
		peak.GameType,
		peak.Season,
		peak.PeakMMR,
		peak.RankName,
		peak.Division,
		updatedAt,
	}
}

func (r *seasonalPeakRepository) Get(ctx context.Context, userID, gameType string, season int) (*models.SeasonalPeak, error) {
	query := `
		SELECT user_id, game_type, season, peak_mmr, rank_name, division, updated_at
		FROM seasonal_peaks
		WHERE user_id = ? AND game_type = ? AND season = ?
	`

	var p models.SeasonalPeak
	err := r.db.QueryRowContext(ctx, query, userID, gameType, season).Scan(
		&p.UserID, &p.GameType, &p.Season, &p.PeakMMR, &p.RankName, &p.Division, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seasonal peak for %s/%s season %d: %w", userID, gameType, season, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seasonal peak: %w", err)
	}
	return &p, nil
}

func (r *seasonalPeakRepository) GetAllSeasons(ctx context.Context, userID, gameType string) ([]*models.SeasonalPeak, error) {
	query := `
		SELECT user_id, game_type, season, peak_mmr, rank_name, division, updated_at
		FROM seasonal_peaks
		WHERE user_id = ? AND game_type = ?
		ORDER BY season ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasonal peaks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var peaks []*models.SeasonalPeak
	for rows.Next() {
		var p models.SeasonalPeak
		if err := rows.Scan(&p.UserID, &p.GameType, &p.Season, &p.PeakMMR, &p.RankName, &p.Division, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan seasonal peak: %w", err)
		}
		peaks = append(peaks, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seasonal peaks: %w", err)
	}
	return peaks, nil
}
