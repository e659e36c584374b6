// ABOUTME: Authentication gate verifying username/password pairs and issuing tokens
// ABOUTME: Uses bcrypt comparison with constant-time behavior on unknown users

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a valid bcrypt hash compared against when the username is
// unknown, so lookup misses take as long as password mismatches.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Gate verifies login credentials against stored principals and issues
// tokens on success.
type Gate struct {
	loader PrincipalLoader
	codec  *TokenCodec
	logger *slog.Logger
}

// NewGate creates an authentication gate.
func NewGate(loader PrincipalLoader, codec *TokenCodec) *Gate {
	return &Gate{
		loader: loader,
		codec:  codec,
		logger: slog.Default().With("component", "auth"),
	}
}

// Login verifies the username/password pair and returns a signed token.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
// Blocked accounts return the matching account-status error; callers exposed
// to untrusted clients must collapse all failures to one generic message to
// avoid username enumeration.
func (g *Gate) Login(ctx context.Context, username, password string) (string, error) {
	principal, err := g.loader.LoadPrincipal(ctx, username)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			// Dummy comparison to keep timing constant
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			g.logger.Debug("login failed: unknown user", "username", username)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		g.logger.Debug("login failed: password mismatch", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := principal.AccountStatus(); err != nil {
		g.logger.Debug("login failed: account blocked", "username", username, "reason", err)
		return "", err
	}

	token, err := g.codec.Issue(principal.Username, time.Now())
	if err != nil {
		return "", err
	}

	g.logger.Info("login succeeded", "username", username)
	return token, nil
}
