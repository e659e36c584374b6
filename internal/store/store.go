// ABOUTME: Store interfaces and data types for equipos-api persistence
// ABOUTME: Defines User and Team structs plus per-entity store interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when trying to create a user with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// User is a credential record in the app_user table.
type User struct {
	ID               int64
	Username         string
	PasswordHash     string // bcrypt hash
	Enabled          bool
	AccountNonLocked bool
	// Expiry dates are nil when the account or credentials never expire.
	CredentialsExpiryDate *time.Time
	AccountExpiryDate     *time.Time
	CreatedAt             time.Time
}

// Team is a row in the equipo table.
type Team struct {
	ID      int64
	Name    string
	League  string
	Country string
}

// UserStore defines the interface for user credential persistence.
type UserStore interface {
	// CreateUser inserts a user. Returns ErrUsernameExists if the username
	// is already taken.
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
}

// TeamStore defines the interface for team persistence.
type TeamStore interface {
	// ListTeams returns all teams ordered by id.
	ListTeams(ctx context.Context) ([]*Team, error)
	// SearchTeamsByName returns teams whose name contains the given
	// substring, case-insensitive, ordered by id.
	SearchTeamsByName(ctx context.Context, name string) ([]*Team, error)
	GetTeam(ctx context.Context, id int64) (*Team, error)
	// CreateTeam inserts a team and sets the generated id on the struct.
	CreateTeam(ctx context.Context, team *Team) error
	UpdateTeam(ctx context.Context, team *Team) error
	DeleteTeam(ctx context.Context, id int64) error
}
