// ABOUTME: Tests for the authentication gate
// ABOUTME: Covers successful login, bad credentials, and blocked accounts

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// mockLoader implements PrincipalLoader against an in-memory map.
type mockLoader struct {
	principals map[string]*Principal
	err        error
}

func (m *mockLoader) LoadPrincipal(ctx context.Context, username string) (*Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.principals[username]
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	return p, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword() error = %v", err)
	}
	return string(hash)
}

func TestGate_Login_Success(t *testing.T) {
	codec, _ := NewTokenCodec(testSecret, time.Hour)
	p := activePrincipal("test")
	p.PasswordHash = hashPassword(t, "12345")

	gate := NewGate(&mockLoader{principals: map[string]*Principal{"test": p}}, codec)

	token, err := gate.Login(context.Background(), "test", "12345")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Username != "test" {
		t.Errorf("token subject = %q, want %q", claims.Username, "test")
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("token expiry %v should be in the future", claims.ExpiresAt)
	}
}

func TestGate_Login_WrongPassword(t *testing.T) {
	codec, _ := NewTokenCodec(testSecret, time.Hour)
	p := activePrincipal("test")
	p.PasswordHash = hashPassword(t, "12345")

	gate := NewGate(&mockLoader{principals: map[string]*Principal{"test": p}}, codec)

	token, err := gate.Login(context.Background(), "test", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if token != "" {
		t.Errorf("Login() returned a token on failure: %q", token)
	}
}

func TestGate_Login_UnknownUser(t *testing.T) {
	codec, _ := NewTokenCodec(testSecret, time.Hour)
	gate := NewGate(&mockLoader{principals: map[string]*Principal{}}, codec)

	token, err := gate.Login(context.Background(), "nobody", "12345")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if token != "" {
		t.Errorf("Login() returned a token on failure: %q", token)
	}
}

func TestGate_Login_BlockedAccounts(t *testing.T) {
	codec, _ := NewTokenCodec(testSecret, time.Hour)
	hash := hashPassword(t, "12345")

	tests := []struct {
		name    string
		mutate  func(*Principal)
		wantErr error
	}{
		{
			name:    "disabled",
			mutate:  func(p *Principal) { p.Enabled = false },
			wantErr: ErrAccountDisabled,
		},
		{
			name:    "locked",
			mutate:  func(p *Principal) { p.AccountNonLocked = false },
			wantErr: ErrAccountLocked,
		},
		{
			name:    "account expired",
			mutate:  func(p *Principal) { p.AccountNonExpired = false },
			wantErr: ErrAccountExpired,
		},
		{
			name:    "credentials expired",
			mutate:  func(p *Principal) { p.CredentialsNonExpired = false },
			wantErr: ErrCredentialsExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := activePrincipal("test")
			p.PasswordHash = hash
			tt.mutate(p)

			gate := NewGate(&mockLoader{principals: map[string]*Principal{"test": p}}, codec)

			_, err := gate.Login(context.Background(), "test", "12345")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGate_Login_LoaderFailure(t *testing.T) {
	codec, _ := NewTokenCodec(testSecret, time.Hour)
	loaderErr := errors.New("store unavailable")
	gate := NewGate(&mockLoader{err: loaderErr}, codec)

	_, err := gate.Login(context.Background(), "test", "12345")
	if !errors.Is(err, loaderErr) {
		t.Errorf("Login() error = %v, want wrapped loader error", err)
	}
}
