package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

// Optional descriptive columns are read through COALESCE so that NULL maps
// to the empty string.
const (
	personColumns = `id, name, COALESCE(height, ''), COALESCE(mass, ''),
		COALESCE(hair_color, ''), COALESCE(skin_color, ''), COALESCE(eye_color, ''),
		COALESCE(birth_year, ''), COALESCE(gender, ''), COALESCE(description, '')`

	planetColumns = `id, name, COALESCE(climate, ''), COALESCE(diameter, ''),
		COALESCE(gravity, ''), COALESCE(orbital_period, ''), COALESCE(rotation_period, ''),
		COALESCE(population, ''), COALESCE(surface_water, ''), COALESCE(terrain, ''),
		COALESCE(description, '')`
)

// CreatePerson persists a new person.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO people (name, height, mass, hair_color, skin_color, eye_color, birth_year, gender, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		person.Name, nullString(person.Height), nullString(person.Mass),
		nullString(person.HairColor), nullString(person.SkinColor), nullString(person.EyeColor),
		nullString(person.BirthYear), nullString(person.Gender), nullString(person.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read person id: %w", err)
	}
	person.ID = id

	return nil
}

// GetPerson retrieves a person by ID.
func (q queries) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	person, err := scanPerson(q.q.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPeople retrieves all people.
func (q queries) ListPeople(ctx context.Context) ([]*models.Person, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+personColumns+` FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []*models.Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// CreatePlanet persists a new planet.
func (s *SQLiteStore) CreatePlanet(ctx context.Context, planet *models.Planet) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO planet (name, climate, diameter, gravity, orbital_period, rotation_period, population, surface_water, terrain, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		planet.Name, nullString(planet.Climate), nullString(planet.Diameter),
		nullString(planet.Gravity), nullString(planet.OrbitalPeriod), nullString(planet.RotationPeriod),
		nullString(planet.Population), nullString(planet.SurfaceWater), nullString(planet.Terrain),
		nullString(planet.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to insert planet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read planet id: %w", err)
	}
	planet.ID = id

	return nil
}

// GetPlanet retrieves a planet by ID.
func (q queries) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	planet, err := scanPlanet(q.q.QueryRowContext(ctx,
		`SELECT `+planetColumns+` FROM planet WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("planet %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planet: %w", err)
	}
	return planet, nil
}

// ListPlanets retrieves all planets.
func (q queries) ListPlanets(ctx context.Context) ([]*models.Planet, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+planetColumns+` FROM planet ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}
	defer rows.Close()

	planets := []*models.Planet{}
	for rows.Next() {
		planet, err := scanPlanet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		planets = append(planets, planet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate planets: %w", err)
	}

	return planets, nil
}

func scanPerson(row scanner) (*models.Person, error) {
	p := &models.Person{}
	err := row.Scan(&p.ID, &p.Name, &p.Height, &p.Mass, &p.HairColor, &p.SkinColor,
		&p.EyeColor, &p.BirthYear, &p.Gender, &p.Description)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPlanet(row scanner) (*models.Planet, error) {
	p := &models.Planet{}
	err := row.Scan(&p.ID, &p.Name, &p.Climate, &p.Diameter, &p.Gravity, &p.OrbitalPeriod,
		&p.RotationPeriod, &p.Population, &p.SurfaceWater, &p.Terrain, &p.Description)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// nullString stores "" as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
