// ABOUTME: User credential store methods on SQLiteStore
// ABOUTME: Handles app_user rows including nullable expiry dates

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// dateLayout is the storage format for expiry dates (date precision only,
// matching the day-granularity expiry semantics).
const dateLayout = "2006-01-02"

// CreateUser inserts a new user row.
// Returns ErrUsernameExists if the username is already taken, which callers
// performing an idempotent seed treat as a no-op.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO app_user (username, password_hash, enabled, account_non_locked,
			credentials_expiry_date, account_expiry_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		boolToInt(user.Enabled),
		boolToInt(user.AccountNonLocked),
		nullDate(user.CredentialsExpiryDate),
		nullDate(user.AccountExpiryDate),
		user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting user id: %w", err)
	}

	s.logger.Info("created user", "id", user.ID, "username", user.Username)
	return nil
}

// GetUserByUsername retrieves a user by username.
// Returns ErrNotFound if the user doesn't exist.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, enabled, account_non_locked,
			credentials_expiry_date, account_expiry_date, created_at
		FROM app_user
		WHERE username = ?
	`

	var user User
	var enabled, nonLocked int
	var credExpiry, acctExpiry sql.NullString
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&enabled,
		&nonLocked,
		&credExpiry,
		&acctExpiry,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	user.Enabled = enabled != 0
	user.AccountNonLocked = nonLocked != 0

	user.CredentialsExpiryDate, err = parseNullDate(credExpiry)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials_expiry_date: %w", err)
	}
	user.AccountExpiryDate, err = parseNullDate(acctExpiry)
	if err != nil {
		return nil, fmt.Errorf("parsing account_expiry_date: %w", err)
	}

	user.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &user, nil
}

// CountUsers returns the number of user rows.
func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM app_user`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullDate returns nil for nil times, otherwise the date-formatted string
func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(dateLayout)
}

func parseNullDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
