// ABOUTME: SQLite implementation of the store interfaces using modernc.org/sqlite
// ABOUTME: Provides user/team persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the UserStore and TeamStore interfaces using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS app_user (
			id                      INTEGER PRIMARY KEY AUTOINCREMENT,
			username                TEXT NOT NULL UNIQUE,
			password_hash           TEXT NOT NULL,
			enabled                 INTEGER NOT NULL DEFAULT 1,
			account_non_locked      INTEGER NOT NULL DEFAULT 1,
			credentials_expiry_date TEXT,
			account_expiry_date     TEXT,
			created_at              TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_app_user_username ON app_user(username);

		CREATE TABLE IF NOT EXISTS equipo (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL,
			liga   TEXT NOT NULL,
			pais   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_equipo_nombre ON equipo(nombre);
	`

	_, err := s.db.Exec(schema)
	return err
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// Ensure SQLiteStore implements the store interfaces
var _ UserStore = (*SQLiteStore)(nil)
var _ TeamStore = (*SQLiteStore)(nil)
