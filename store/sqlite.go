// Package store records which workbooks the watcher has already processed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

// FileStore tracks processed workbook paths
type FileStore interface {
	MarkProcessed(path string, changes int) error
	IsProcessed(path string) (bool, error)
	Close() error
}

// sqliteStore is the SQLite implementation of FileStore
type sqliteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS processed_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		changes INTEGER NOT NULL DEFAULT 0,
		processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

// NewSQLiteStore opens the database at path, creating it and its table if
// needed
func NewSQLiteStore(path string, logger *zap.Logger) (FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// A single connection serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create processed_files table: %w", err)
	}

	logger.Info("SQLite database initialized", zap.String("path", path))
	return &sqliteStore{db: db, logger: logger}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.logger.Debug("SQLite database connection closed")
	return err
}

// MarkProcessed records path as processed with its change count. Marking a
// path twice keeps the first record.
func (s *sqliteStore) MarkProcessed(path string, changes int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO processed_files (path, changes, processed_at) VALUES (?, ?, ?)",
		path, changes, time.Now().UTC(),
	)
	if err != nil {
		s.logger.Error("failed to mark file processed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to mark %s processed: %w", path, err)
	}
	s.logger.Debug("file marked processed", zap.String("path", path), zap.Int("changes", changes))
	return nil
}

// IsProcessed reports whether path has been recorded
func (s *sqliteStore) IsProcessed(path string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM processed_files WHERE path = ?", path).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check processed status for %s: %w", path, err)
	}
	return count > 0, nil
}
