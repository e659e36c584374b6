// ABOUTME: Team store methods on SQLiteStore for the equipo table
// ABOUTME: Implements list, case-insensitive search, get, create, update, delete

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ListTeams returns all teams ordered by id.
func (s *SQLiteStore) ListTeams(ctx context.Context) ([]*Team, error) {
	query := `
		SELECT id, nombre, liga, pais
		FROM equipo
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	return scanTeams(rows)
}

// SearchTeamsByName returns teams whose name contains the given substring,
// case-insensitive, ordered by id.
func (s *SQLiteStore) SearchTeamsByName(ctx context.Context, name string) ([]*Team, error) {
	query := `
		SELECT id, nombre, liga, pais
		FROM equipo
		WHERE lower(nombre) LIKE ?
		ORDER BY id
	`

	pattern := "%" + strings.ToLower(name) + "%"
	rows, err := s.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching teams by name: %w", err)
	}
	defer rows.Close()

	return scanTeams(rows)
}

func scanTeams(rows *sql.Rows) ([]*Team, error) {
	var teams []*Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.League, &t.Country); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}
	return teams, nil
}

// GetTeam retrieves a team by id.
// Returns ErrNotFound if the team doesn't exist.
func (s *SQLiteStore) GetTeam(ctx context.Context, id int64) (*Team, error) {
	query := `
		SELECT id, nombre, liga, pais
		FROM equipo
		WHERE id = ?
	`

	var t Team
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.League, &t.Country)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// CreateTeam inserts a new team and sets the generated id.
func (s *SQLiteStore) CreateTeam(ctx context.Context, team *Team) error {
	query := `
		INSERT INTO equipo (nombre, liga, pais)
		VALUES (?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, team.Name, team.League, team.Country)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	team.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting team id: %w", err)
	}

	s.logger.Debug("created team", "id", team.ID, "nombre", team.Name)
	return nil
}

// UpdateTeam overwrites an existing team's fields.
// Returns ErrNotFound if the team doesn't exist.
func (s *SQLiteStore) UpdateTeam(ctx context.Context, team *Team) error {
	query := `
		UPDATE equipo
		SET nombre = ?, liga = ?, pais = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, team.Name, team.League, team.Country, team.ID)
	if err != nil {
		return fmt.Errorf("updating team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated team", "id", team.ID)
	return nil
}

// DeleteTeam removes a team by id.
// Returns ErrNotFound if the team doesn't exist.
func (s *SQLiteStore) DeleteTeam(ctx context.Context, id int64) error {
	query := `DELETE FROM equipo WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted team", "id", id)
	return nil
}
