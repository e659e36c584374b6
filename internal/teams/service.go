// ABOUTME: Team resource service delegating to the team store
// ABOUTME: Plain data access with existence checks, no further business rules

package teams

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/duxsoftware/equipos-api/internal/store"
)

// Service exposes CRUD operations over teams. Field validation happens at
// the API boundary before these methods run; the service only enforces
// existence.
type Service struct {
	store  store.TeamStore
	logger *slog.Logger
}

// NewService creates a team service backed by the given store.
func NewService(s store.TeamStore) *Service {
	return &Service{
		store:  s,
		logger: slog.Default().With("component", "teams"),
	}
}

// List returns all teams ordered by id.
func (s *Service) List(ctx context.Context) ([]*store.Team, error) {
	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}

// SearchByName returns teams whose name contains the substring, case-insensitive.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*store.Team, error) {
	teams, err := s.store.SearchTeamsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("searching teams: %w", err)
	}
	return teams, nil
}

// Get returns the team with the given id.
// Returns store.ErrNotFound if it doesn't exist.
func (s *Service) Get(ctx context.Context, id int64) (*store.Team, error) {
	return s.store.GetTeam(ctx, id)
}

// Create persists a new team and returns it with its generated id.
func (s *Service) Create(ctx context.Context, name, league, country string) (*store.Team, error) {
	team := &store.Team{Name: name, League: league, Country: country}
	if err := s.store.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	s.logger.Info("created team", "id", team.ID, "nombre", team.Name)
	return team, nil
}

// Update overwrites all three fields of an existing team.
// Returns store.ErrNotFound if the id doesn't exist.
func (s *Service) Update(ctx context.Context, id int64, name, league, country string) (*store.Team, error) {
	team := &store.Team{ID: id, Name: name, League: league, Country: country}
	if err := s.store.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}
	s.logger.Info("updated team", "id", id)
	return team, nil
}

// Delete removes a team by id.
// Returns store.ErrNotFound if the id doesn't exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted team", "id", id)
	return nil
}
