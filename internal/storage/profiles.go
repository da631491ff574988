package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kwpid/HighCard-V2/internal/progression"
)

// ProfileStore persists player profiles as JSON documents, one row per
// user. The profile is the single source of truth for progression state;
// the relational tables hold derived history for querying.
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a profile store backed by the given database.
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Load retrieves a user's profile. A missing row or an unreadable
// document yields a fresh default profile rather than an error, so a
// player can always start playing.
func (s *ProfileStore) Load(ctx context.Context, userID, username string) (progression.Profile, error) {
	var data string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE user_id = ?`, userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.NewProfile(username), nil
	}
	if err != nil {
		return progression.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile progression.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		log.Printf("[ProfileStore] corrupt profile for %s, resetting: %v", userID, err)
		return progression.NewProfile(username), nil
	}
	profile.Normalize()
	return profile, nil
}

// Save writes a user's profile, replacing any previous document.
func (s *ProfileStore) Save(ctx context.Context, userID string, profile progression.Profile) error {
	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.SaveTx(ctx, tx, userID, profile)
	})
}

// SaveTx writes a user's profile within an existing transaction.
func (s *ProfileStore) SaveTx(ctx context.Context, tx *sql.Tx, userID string, profile progression.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, userID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
