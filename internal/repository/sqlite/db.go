// Package sqlite persists sessions, messages and feedback in a single
// database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/config"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DB wraps the shared database handle
type DB struct {
	SQL *sql.DB
}

// NewDB opens the database file, creating its directory if needed, and
// verifies connectivity. The handle is long-lived and shared by all
// repositories; sqlite's own locking arbitrates concurrent writers.
func NewDB(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{SQL: db}, nil
}

// Close closes the database handle
func (db *DB) Close() error {
	return db.SQL.Close()
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// isUniqueViolation checks whether err is a sqlite UNIQUE constraint error.
// modernc.org/sqlite does not export a typed error for this, so match on
// the message the way the driver surfaces it.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE")
}

// Timestamps are stored as fixed-width ISO-8601 UTC text. The fractional
// part is never trimmed: ORDER BY on these columns compares text, and
// variable-width fractions would sort ".1Z" after ".15Z".
const timeFormat = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		log.Warn().Str("value", s).Msg("Unparseable timestamp in database row")
	}
	return t
}
