// ABOUTME: Principal type and request-context propagation helpers
// ABOUTME: Provides WithPrincipal/FromContext for passing identity through handlers

package auth

import (
	"context"
	"errors"
)

// Account status errors returned by Principal.AccountStatus.
var (
	ErrAccountDisabled    = errors.New("account disabled")
	ErrAccountLocked      = errors.New("account locked")
	ErrAccountExpired     = errors.New("account expired")
	ErrCredentialsExpired = errors.New("credentials expired")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Principal holds the authenticated identity and its account-status flags,
// resolved from a username. It is built fresh per lookup and never persisted.
type Principal struct {
	Username              string
	PasswordHash          string // bcrypt hash, only consulted by the gate
	Enabled               bool
	AccountNonLocked      bool
	AccountNonExpired     bool
	CredentialsNonExpired bool
	Authorities           []string // always empty in this system
}

// AccountStatus returns nil if every account flag allows authentication,
// otherwise the error for the first blocking flag.
func (p *Principal) AccountStatus() error {
	switch {
	case !p.Enabled:
		return ErrAccountDisabled
	case !p.AccountNonLocked:
		return ErrAccountLocked
	case !p.AccountNonExpired:
		return ErrAccountExpired
	case !p.CredentialsNonExpired:
		return ErrCredentialsExpired
	}
	return nil
}

// PrincipalLoader resolves a username to a Principal.
// Implementations return ErrPrincipalNotFound for unknown usernames.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, username string) (*Principal, error)
}

// principalKey is the key type for storing a Principal in context.Context.
type principalKey struct{}

// WithPrincipal returns a new context with the Principal attached.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the Principal from the context, returning nil if not present.
func FromContext(ctx context.Context) *Principal {
	val := ctx.Value(principalKey{})
	if val == nil {
		return nil
	}
	p, ok := val.(*Principal)
	if !ok {
		return nil
	}
	return p
}

// MustFromContext retrieves the Principal from the context, panicking if not present.
func MustFromContext(ctx context.Context) *Principal {
	p := FromContext(ctx)
	if p == nil {
		panic("auth: Principal not found in context")
	}
	return p
}
