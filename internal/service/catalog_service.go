package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

// CatalogService serves the read-only catalog: users, people and planets.
type CatalogService struct {
	store storage.Store
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// ListUsers returns all users.
func (s *CatalogService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, NewError(CodeInternal, err)
	}
	slog.Debug("ListUsers successful", "count", len(users))
	return users, nil
}

// GetUser returns a user by ID.
func (s *CatalogService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, Errorf(CodeNotFound, "User not found")
	}
	if err != nil {
		slog.Error("GetUser failed", "user_id", id, "error", err)
		return nil, NewError(CodeInternal, err)
	}
	return user, nil
}

// ListPeople returns all people.
func (s *CatalogService) ListPeople(ctx context.Context) ([]*models.Person, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, NewError(CodeInternal, err)
	}
	slog.Debug("ListPeople successful", "count", len(people))
	return people, nil
}

// GetPerson returns a person by ID.
func (s *CatalogService) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	person, err := s.store.GetPerson(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, Errorf(CodeNotFound, "People not found")
	}
	if err != nil {
		slog.Error("GetPerson failed", "people_id", id, "error", err)
		return nil, NewError(CodeInternal, err)
	}
	return person, nil
}

// ListPlanets returns all planets.
func (s *CatalogService) ListPlanets(ctx context.Context) ([]*models.Planet, error) {
	planets, err := s.store.ListPlanets(ctx)
	if err != nil {
		slog.Error("ListPlanets failed", "error", err)
		return nil, NewError(CodeInternal, err)
	}
	slog.Debug("ListPlanets successful", "count", len(planets))
	return planets, nil
}

// GetPlanet returns a planet by ID.
func (s *CatalogService) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	planet, err := s.store.GetPlanet(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, Errorf(CodeNotFound, "Planet not found")
	}
	if err != nil {
		slog.Error("GetPlanet failed", "planet_id", id, "error", err)
		return nil, NewError(CodeInternal, err)
	}
	return planet, nil
}
