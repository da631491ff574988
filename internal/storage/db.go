// Package storage provides sqlite-backed persistence for player profiles,
// match records, MMR history and seasonal peaks.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// DB is the pooled connection the profile store and repositories share.
type DB struct {
	conn *sql.DB
}

// Config controls how the sqlite file is opened.
type Config struct {
	// Path to the database file. ":memory:" keeps everything in RAM,
	// which the tests rely on.
	Path string

	// Pool sizing.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// BusyTimeout is how long a statement waits on a locked database.
	BusyTimeout time.Duration

	// JournalMode and Synchronous map straight to the sqlite pragmas of
	// the same names.
	JournalMode string
	Synchronous string

	// AutoMigrate applies pending schema migrations during Open. Off by
	// default so callers that manage migrations themselves can.
	AutoMigrate bool
}

// DefaultConfig returns the settings every binary here starts from: WAL
// journaling, NORMAL sync, a small pool, five-second busy timeout.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:            path,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		BusyTimeout:     5 * time.Second,
		JournalMode:     "WAL",
		Synchronous:     "NORMAL",
	}
}

// dsn renders the sqlite connection string with the pragma parameters.
// Foreign keys are always on; the history tables reference matches.
func (c *Config) dsn() string {
	return fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=%s&_synchronous=%s&_foreign_keys=on",
		c.Path,
		c.BusyTimeout.Milliseconds(),
		c.JournalMode,
		c.Synchronous,
	)
}

// Open connects to the database, creating the parent directory for new
// files, and optionally migrates the schema first. The migrator needs
// exclusive access, so with AutoMigrate the pool is opened only after
// migrations finish.
func Open(config *Config) (*DB, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if config.Path != ":memory:" {
		dir := filepath.Dir(config.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if config.AutoMigrate {
		mgr, err := NewMigrationManager(config.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create migration manager: %w", err)
		}
		if err := mgr.Up(); err != nil {
			_ = mgr.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := mgr.Close(); err != nil {
			return nil, fmt.Errorf("failed to close migration manager: %w", err)
		}
	}

	conn, err := openPool(config)
	if err != nil {
		return nil, err
	}
	return &DB{conn: conn}, nil
}

// openPool opens and verifies one pooled connection set.
func openPool(config *Config) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", config.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(config.MaxOpenConns)
	conn.SetMaxIdleConns(config.MaxIdleConns)
	conn.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Conn exposes the underlying pool for the repositories.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping verifies the database is reachable.
func (db *DB) Ping() error {
	return db.conn.Ping()
}
