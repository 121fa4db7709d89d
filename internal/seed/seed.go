// Package seed loads the fixed demo catalog: three users, five people and
// five planets. Seeding wipes every table first, so IDs always start at 1
// (Yavin IV is planet 3).
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/holocron/internal/auth"
	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

var users = []seedUser{
	{Email: "luke@rebels.com", Password: "theforce123", FirstName: "Luke", LastName: "Skywalker"},
	{Email: "leia@rebels.com", Password: "princess123", FirstName: "Leia", LastName: "Organa"},
	{Email: "han@smugglers.com", Password: "falcon123", FirstName: "Han", LastName: "Solo"},
}

// People returns the seeded people in insertion order.
func People() []models.Person {
	return []models.Person{
		{
			Name: "Luke Skywalker", Height: "172", Mass: "77", HairColor: "blond", SkinColor: "fair",
			EyeColor: "blue", BirthYear: "19BBY", Gender: "male",
			Description: "A young farm boy from Tatooine who became a Jedi Knight",
		},
		{
			Name: "Darth Vader", Height: "202", Mass: "136", HairColor: "none", SkinColor: "white",
			EyeColor: "yellow", BirthYear: "41.9BBY", Gender: "male",
			Description: "Former Jedi Knight turned Sith Lord",
		},
		{
			Name: "Princess Leia", Height: "150", Mass: "49", HairColor: "brown", SkinColor: "light",
			EyeColor: "brown", BirthYear: "19BBY", Gender: "female",
			Description: "Princess of Alderaan and leader of the Rebel Alliance",
		},
		{
			Name: "Obi-Wan Kenobi", Height: "182", Mass: "77", HairColor: "auburn, white", SkinColor: "fair",
			EyeColor: "blue-gray", BirthYear: "57BBY", Gender: "male",
			Description: "Jedi Master and mentor to Anakin and Luke Skywalker",
		},
		{
			Name: "Han Solo", Height: "180", Mass: "80", HairColor: "brown", SkinColor: "fair",
			EyeColor: "brown", BirthYear: "29BBY", Gender: "male",
			Description: "Smuggler captain of the Millennium Falcon",
		},
	}
}

// Planets returns the seeded planets in insertion order.
func Planets() []models.Planet {
	return []models.Planet{
		{
			Name: "Tatooine", Climate: "arid", Diameter: "10465", Gravity: "1 standard",
			OrbitalPeriod: "304", RotationPeriod: "23", Population: "200000", SurfaceWater: "1",
			Terrain: "desert", Description: "A desert world with twin suns in the Outer Rim",
		},
		{
			Name: "Alderaan", Climate: "temperate", Diameter: "12500", Gravity: "1 standard",
			OrbitalPeriod: "364", RotationPeriod: "24", Population: "2000000000", SurfaceWater: "40",
			Terrain: "grasslands, mountains", Description: "Peaceful planet destroyed by the Death Star",
		},
		{
			Name: "Yavin IV", Climate: "temperate, tropical", Diameter: "10200", Gravity: "1 standard",
			OrbitalPeriod: "4818", RotationPeriod: "24", Population: "1000", SurfaceWater: "8",
			Terrain: "jungle, rainforests", Description: "Forest moon and Rebel Alliance base",
		},
		{
			Name: "Hoth", Climate: "frozen", Diameter: "7200", Gravity: "1.1 standard",
			OrbitalPeriod: "549", RotationPeriod: "23", Population: "unknown", SurfaceWater: "100",
			Terrain: "tundra, ice caves, mountain ranges", Description: "Frozen planet used as Rebel base",
		},
		{
			Name: "Dagobah", Climate: "murky", Diameter: "8900", Gravity: "N/A",
			OrbitalPeriod: "341", RotationPeriod: "22", Population: "unknown", SurfaceWater: "8",
			Terrain: "swamp, jungles", Description: "Swamp planet where Yoda lived in exile",
		},
	}
}

// Summary counts the rows written by Run.
type Summary struct {
	Users   int
	People  int
	Planets int
}

// Run resets s and loads the demo catalog. User passwords are stored as
// bcrypt hashes.
func Run(ctx context.Context, s storage.Seeder) (*Summary, error) {
	if err := s.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset store: %w", err)
	}

	summary := &Summary{}
	now := time.Now().UTC()

	for _, su := range users {
		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
		}
		user := &models.User{
			Email:            su.Email,
			Password:         hash,
			FirstName:        su.FirstName,
			LastName:         su.LastName,
			SubscriptionDate: now,
		}
		if err := s.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", su.Email, err)
		}
		slog.Debug("Seeded user", "user_id", user.ID, "name", user.FullName())
		summary.Users++
	}

	for _, p := range People() {
		if err := s.CreatePerson(ctx, &p); err != nil {
			return nil, fmt.Errorf("failed to create person %s: %w", p.Name, err)
		}
		summary.People++
	}

	for _, p := range Planets() {
		if err := s.CreatePlanet(ctx, &p); err != nil {
			return nil, fmt.Errorf("failed to create planet %s: %w", p.Name, err)
		}
		summary.Planets++
	}

	slog.Info("Database seeded", "users", summary.Users, "people", summary.People, "planets", summary.Planets)
	return summary, nil
}
