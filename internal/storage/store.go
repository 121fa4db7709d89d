// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/holocron/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned (wrapped) when an insert violates a unique
	// constraint, e.g. a second favorite for the same user and target.
	ErrDuplicate = errors.New("duplicate")
)

// Reader defines the lookups shared by a Store and a Tx.
type Reader interface {
	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListPeople returns all people ordered by ID.
	ListPeople(ctx context.Context) ([]*models.Person, error)

	// GetPerson retrieves a person by ID. Returns ErrNotFound if absent.
	GetPerson(ctx context.Context, id int64) (*models.Person, error)

	// ListPlanets returns all planets ordered by ID.
	ListPlanets(ctx context.Context) ([]*models.Planet, error)

	// GetPlanet retrieves a planet by ID. Returns ErrNotFound if absent.
	GetPlanet(ctx context.Context, id int64) (*models.Planet, error)

	// ListFavoritesByUser returns the user's favorites in insertion order,
	// with TargetName resolved.
	ListFavoritesByUser(ctx context.Context, userID int64) ([]*models.Favorite, error)

	// FindFavorite returns the favorite of userID pointing at target.
	// Returns ErrNotFound if there is none.
	FindFavorite(ctx context.Context, userID int64, target models.Target) (*models.Favorite, error)
}

// Tx is a unit of work. All reads observe the writes made earlier in the
// same Tx.
type Tx interface {
	Reader

	// CreateFavorite inserts fav and populates fav.ID.
	// Returns models.ErrInvalidTarget for an invalid target and ErrDuplicate
	// if the user already has a favorite for the same target.
	CreateFavorite(ctx context.Context, fav *models.Favorite) error

	// DeleteFavorite removes a favorite by ID. Returns ErrNotFound if absent.
	DeleteFavorite(ctx context.Context, id int64) error
}

// Store defines the interface for catalog and favorites storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	Reader

	// InTx runs fn in a transaction. The transaction is committed if fn
	// returns nil and rolled back otherwise; fn's error is returned as is.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Seeder populates the catalog. It is used by the seed command and tests,
// never by the HTTP API.
type Seeder interface {
	// Reset deletes every row from every table.
	Reset(ctx context.Context) error

	// CreateUser inserts user and populates user.ID.
	CreateUser(ctx context.Context, user *models.User) error

	// CreatePerson inserts person and populates person.ID.
	CreatePerson(ctx context.Context, person *models.Person) error

	// CreatePlanet inserts planet and populates planet.ID.
	CreatePlanet(ctx context.Context, planet *models.Planet) error
}

// SeedableStore is a Store that can also be seeded.
type SeedableStore interface {
	Store
	Seeder
}
