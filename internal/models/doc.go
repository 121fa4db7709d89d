// Package models defines the core domain models for holocron.
//
// # Catalog
//
// People and planets are read-only catalog entries. They are created by the
// seed command and never modified through the API.
//
// # Users and favorites
//
// A User owns zero or more Favorites. A Favorite links its user to exactly
// one catalog entry, described by a Target:
//
//	models.PeopleTarget(3)  // the person with id 3
//	models.PlanetTarget(3)  // the planet with id 3
//
// Deleting a user deletes its favorites. A favorite whose catalog entry
// cannot be found reads back with a nil TargetName.
//
// # Design Principles
//
//  1. Integer IDs assigned by the store
//  2. A favorite target is a tagged value, never two optional IDs
//  3. Zero time means "unset" for timestamps
package models
