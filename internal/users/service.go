// ABOUTME: User service resolving usernames to principals and seeding the default user
// ABOUTME: Derives account/credential expiry flags from the stored expiry dates

package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/duxsoftware/equipos-api/internal/auth"
	"github.com/duxsoftware/equipos-api/internal/store"
)

// Default credentials seeded on first startup.
const (
	defaultUsername = "test"
	defaultPassword = "12345"
)

// Service resolves usernames to authentication principals.
type Service struct {
	store  store.UserStore
	logger *slog.Logger
}

// NewService creates a user service backed by the given store.
func NewService(s store.UserStore) *Service {
	return &Service{
		store:  s,
		logger: slog.Default().With("component", "users"),
	}
}

// LoadPrincipal resolves a username to a Principal with its account-status
// flags. Returns auth.ErrPrincipalNotFound for unknown usernames.
func (s *Service) LoadPrincipal(ctx context.Context, username string) (*auth.Principal, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("loading user %q: %w", username, err)
	}

	now := time.Now()
	return &auth.Principal{
		Username:              user.Username,
		PasswordHash:          user.PasswordHash,
		Enabled:               user.Enabled,
		AccountNonLocked:      user.AccountNonLocked,
		AccountNonExpired:     nonExpired(user.AccountExpiryDate, now),
		CredentialsNonExpired: nonExpired(user.CredentialsExpiryDate, now),
		Authorities:           []string{},
	}, nil
}

// nonExpired reports whether an expiry date allows authentication:
// a nil date never expires, otherwise the date must be in the future.
func nonExpired(expiry *time.Time, now time.Time) bool {
	return expiry == nil || expiry.After(now)
}

// EnsureDefaultUser seeds the default "test" user if it doesn't exist.
// The write is idempotent: a duplicate-username failure, including one from
// a second instance racing the same seed, is treated as a no-op.
func (s *Service) EnsureDefaultUser(ctx context.Context) error {
	if _, err := s.store.GetUserByUsername(ctx, defaultUsername); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking default user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing default password: %w", err)
	}

	// Seeded expiries are 100 years out
	expiry := time.Now().AddDate(100, 0, 0)

	user := &store.User{
		Username:              defaultUsername,
		PasswordHash:          string(hash),
		Enabled:               true,
		AccountNonLocked:      true,
		CredentialsExpiryDate: &expiry,
		AccountExpiryDate:     &expiry,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("default user already seeded by another instance")
			return nil
		}
		return fmt.Errorf("seeding default user: %w", err)
	}

	s.logger.Info("seeded default user", "username", defaultUsername)
	return nil
}

// Ensure Service satisfies the loader contract used by auth.
var _ auth.PrincipalLoader = (*Service)(nil)
