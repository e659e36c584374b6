// Package store provides persistent storage for equipos-api using SQLite.
//
// # Architecture
//
// The package exposes two narrow interfaces:
//
//   - UserStore: credential records backing authentication
//   - TeamStore: CRUD over the equipo resource
//
// SQLiteStore implements both in a single struct, so the composition root can
// hand the same store to the user and team services while each sees only the
// interface it needs.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is applied on startup and is idempotent. The UNIQUE constraint
// on app_user.username doubles as the guard for the startup seed: a second
// instance racing the seed write gets ErrUsernameExists and treats it as a
// no-op.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entity does not exist
//   - ErrUsernameExists: Username already taken
//
// All methods accept context.Context for cancellation support.
package store
