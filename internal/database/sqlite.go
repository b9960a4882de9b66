// Package database provides database connectivity and the classification
// history repository.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// DefaultPingTimeout is the timeout for connection verification.
	DefaultPingTimeout = 5 * time.Second
	// busyTimeoutMs makes concurrent writers wait instead of failing
	// with SQLITE_BUSY.
	busyTimeoutMs = 5000
)

// NewSQLiteConnection opens (creating if needed) the history database at
// the given path and verifies the connection.
func NewSQLiteConnection(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on", path, busyTimeoutMs)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite serializes writers; one connection avoids lock contention.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", pingErr)
	}

	return db, nil
}

// historySchema holds the append-only classification log.
const historySchema = `
CREATE TABLE IF NOT EXISTS classification_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_id TEXT NOT NULL,
	url TEXT NOT NULL,
	is_positive INTEGER NOT NULL,
	confidence_score INTEGER NOT NULL,
	jurisdiction TEXT NOT NULL DEFAULT '',
	url_score INTEGER NOT NULL,
	content_score INTEGER NOT NULL,
	form_score INTEGER NOT NULL,
	detector_version TEXT NOT NULL DEFAULT '',
	processing_time_ms INTEGER NOT NULL DEFAULT 0,
	classified_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_history_page_id ON classification_history(page_id);
CREATE INDEX IF NOT EXISTS idx_history_classified_at ON classification_history(classified_at);
`

// EnsureSchema creates the history tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}
