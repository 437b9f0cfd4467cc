package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore implements domain.ProgressStore on a single-file database
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// progress_blobs table exists
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	logger.Info("Opening SQLite progress store", zap.String("path", path))

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS progress_blobs (
            storage_key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at DATETIME NOT NULL
        )
    `)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create progress_blobs table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Read returns the value stored under key
func (s *SQLiteStore) Read(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM progress_blobs WHERE storage_key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Write upserts value under key
func (s *SQLiteStore) Write(ctx context.Context, key, value string) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO progress_blobs (storage_key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `, key, value, start.UTC())
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.logger.Debug("Progress blob written",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// HealthCheck verifies the database file is still reachable
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
