package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/progression"
	"github.com/kwpid/HighCard-V2/internal/storage/models"
	"github.com/kwpid/HighCard-V2/internal/storage/repository"
)

// Service provides high-level operations for storing and retrieving
// player progression data. All multi-table writes happen in a single
// transaction so a crash never leaves the profile and its history out
// of sync.
type Service struct {
	db       *DB
	profiles *ProfileStore
	matches  repository.MatchRepository
	history  repository.MMRHistoryRepository
	peaks    repository.SeasonalPeakRepository
}

// NewService creates a new storage service.
func NewService(db *DB) *Service {
	return &Service{
		db:       db,
		profiles: NewProfileStore(db),
		matches:  repository.NewMatchRepository(db.Conn()),
		history:  repository.NewMMRHistoryRepository(db.Conn()),
		peaks:    repository.NewSeasonalPeakRepository(db.Conn()),
	}
}

// Profiles exposes the underlying profile store.
func (s *Service) Profiles() *ProfileStore {
	return s.profiles
}

// MatchRecord captures everything needed to persist one finished match.
type MatchRecord struct {
	UserID         string
	GameType       string
	Ranked         bool
	Won            bool
	Tie            bool
	Team1Score     int
	Team2Score     int
	OpponentRating *int
	MMRBefore      *int
	MMRAfter       *int
	Season         int
	PlayedAt       time.Time
}

// RecordMatch stores a finished match together with the updated profile
// in one transaction. For ranked matches it also appends to the rating
// timeline and bumps the seasonal peak.
func (s *Service) RecordMatch(ctx context.Context, record MatchRecord, profile progression.Profile) error {
	playedAt := record.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}

	match := &models.Match{
		ID:             uuid.NewString(),
		UserID:         record.UserID,
		GameType:       record.GameType,
		Ranked:         record.Ranked,
		Won:            record.Won,
		Tie:            record.Tie,
		Team1Score:     record.Team1Score,
		Team2Score:     record.Team2Score,
		OpponentRating: record.OpponentRating,
		MMRBefore:      record.MMRBefore,
		MMRAfter:       record.MMRAfter,
		Season:         record.Season,
		PlayedAt:       playedAt,
	}

	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.matches.CreateTx(ctx, tx, match); err != nil {
			return err
		}

		if record.Ranked && record.MMRAfter != nil {
			ranked := profile.Ranked[game.GameType(record.GameType)]
			rankName, division := "", ""
			peakMMR := *record.MMRAfter
			if ranked != nil {
				rankName = ranked.CurrentRank
				division = ranked.Division
				if ranked.PeakMMR > peakMMR {
					peakMMR = ranked.PeakMMR
				}
			}
			if rankName == "" {
				// Keep the row self-consistent even when the profile
				// has no entry for this game type.
				rank := progression.RankOf(*record.MMRAfter)
				rankName = rank.Name
				division = rank.Division
			}

			entry := &models.MMRHistoryEntry{
				UserID:     record.UserID,
				GameType:   record.GameType,
				MMR:        *record.MMRAfter,
				RankName:   rankName,
				Division:   division,
				Season:     record.Season,
				RecordedAt: playedAt,
			}
			if err := s.history.CreateTx(ctx, tx, entry); err != nil {
				return err
			}

			peak := &models.SeasonalPeak{
				UserID:    record.UserID,
				GameType:  record.GameType,
				Season:    record.Season,
				PeakMMR:   peakMMR,
				RankName:  rankName,
				Division:  division,
				UpdatedAt: playedAt,
			}
			if err := s.peaks.UpsertTx(ctx, tx, peak); err != nil {
				return err
			}
		}

		return s.profiles.SaveTx(ctx, tx, record.UserID, profile)
	})
}

// GetRecentMatches retrieves a user's most recent matches, newest first.
func (s *Service) GetRecentMatches(ctx context.Context, userID string, limit int) ([]*models.Match, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.matches.GetRecent(ctx, userID, limit)
}

// GetMatchStats summarizes a user's matches. An empty gameType matches
// all game types; a nil ranked filter matches both queues.
func (s *Service) GetMatchStats(ctx context.Context, userID, gameType string, ranked *bool) (*models.MatchStats, error) {
	return s.matches.GetStats(ctx, userID, gameType, ranked)
}

// GetMMRHistory retrieves a user's rating timeline for one game type.
// A zero start means "since the beginning"; a zero end means "until now".
func (s *Service) GetMMRHistory(ctx context.Context, userID, gameType string, start, end time.Time) ([]*models.MMRHistoryEntry, error) {
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return s.history.GetHistory(ctx, userID, gameType, start, end)
}

// GetSeasonalPeaks retrieves every recorded peak for a user and game type.
func (s *Service) GetSeasonalPeaks(ctx context.Context, userID, gameType string) ([]*models.SeasonalPeak, error) {
	return s.peaks.GetAllSeasons(ctx, userID, gameType)
}

// GetSeasonalPeak retrieves one season's peak for a user and game type.
func (s *Service) GetSeasonalPeak(ctx context.Context, userID, gameType string, season int) (*models.SeasonalPeak, error) {
	return s.peaks.Get(ctx, userID, gameType, season)
}

