package models

import (
	"errors"
	"fmt"
	"time"
)

// TargetKind names the catalog table a favorite points at.
type TargetKind string

const (
	KindPeople TargetKind = "people"
	KindPlanet TargetKind = "planet"
)

// ErrInvalidTarget is returned when a Target is not one of the known kinds.
var ErrInvalidTarget = errors.New("favorite target must be a person or a planet")

// Target identifies the catalog entry a favorite refers to.
// The zero Target is invalid; build one with PeopleTarget or PlanetTarget.
type Target struct {
	Kind TargetKind
	ID   int64
}

// PeopleTarget returns a Target for the person with the given ID.
func PeopleTarget(id int64) Target {
	return Target{Kind: KindPeople, ID: id}
}

// PlanetTarget returns a Target for the planet with the given ID.
func PlanetTarget(id int64) Target {
	return Target{Kind: KindPlanet, ID: id}
}

// Validate reports whether t names a known kind. Any ID is accepted; one
// that matches no row is reported by the lookup as not found.
func (t Target) Validate() error {
	if t.Kind != KindPeople && t.Kind != KindPlanet {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTarget, t.Kind)
	}
	return nil
}

// IsZero reports whether t is the zero Target. Rows written before the
// store enforced a target read back as the zero Target.
func (t Target) IsZero() bool {
	return t == Target{}
}

// Label returns the user-facing name of the kind: "People" or "Planet".
func (k TargetKind) Label() string {
	switch k {
	case KindPeople:
		return "People"
	case KindPlanet:
		return "Planet"
	}
	return string(k)
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%d", t.Kind, t.ID)
}

// Favorite links a user to one catalog entry.
// Favorites are immutable once created; they can only be deleted.
type Favorite struct {
	ID     int64
	UserID int64
	Target Target

	// TargetName is the name of the referenced person or planet, resolved
	// when the favorite is read. Nil if the entry no longer exists.
	TargetName *string

	// DateAdded is when the favorite was created. Zero if unknown.
	DateAdded time.Time
}

// NewFavorite creates a favorite for userID and target, stamped with the
// current time. The ID is assigned by the store.
func NewFavorite(userID int64, target Target) *Favorite {
	return &Favorite{
		UserID:    userID,
		Target:    target,
		DateAdded: time.Now().UTC(),
	}
}
