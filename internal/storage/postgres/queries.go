package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

const (
	userColumns = `id, email, password, first_name, last_name, subscription_date`

	personColumns = `id, name, COALESCE(height, ''), COALESCE(mass, ''),
		COALESCE(hair_color, ''), COALESCE(skin_color, ''), COALESCE(eye_color, ''),
		COALESCE(birth_year, ''), COALESCE(gender, ''), COALESCE(description, '')`

	planetColumns = `id, name, COALESCE(climate, ''), COALESCE(diameter, ''),
		COALESCE(gravity, ''), COALESCE(orbital_period, ''), COALESCE(rotation_period, ''),
		COALESCE(population, ''), COALESCE(surface_water, ''), COALESCE(terrain, ''),
		COALESCE(description, '')`

	favoriteSelect = `
		SELECT f.id, f.user_id, f.people_id, f.planet_id, f.date_added,
		       COALESCE(p.name, pl.name)
		FROM favorite f
		LEFT JOIN people p ON p.id = f.people_id
		LEFT JOIN planet pl ON pl.id = f.planet_id`
)

// CreateUser inserts a new user.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO "user" (email, password, first_name, last_name, subscription_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName, timeOrNull(user.SubscriptionDate),
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return nil
}

// CreatePerson inserts a new person.
func (s *PostgresStore) CreatePerson(ctx context.Context, p *models.Person) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO people (name, height, mass, hair_color, skin_color, eye_color, birth_year, gender, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		p.Name, nullString(p.Height), nullString(p.Mass), nullString(p.HairColor),
		nullString(p.SkinColor), nullString(p.EyeColor), nullString(p.BirthYear),
		nullString(p.Gender), nullString(p.Description),
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// CreatePlanet inserts a new planet.
func (s *PostgresStore) CreatePlanet(ctx context.Context, p *models.Planet) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO planet (name, climate, diameter, gravity, orbital_period, rotation_period, population, surface_water, terrain, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		p.Name, nullString(p.Climate), nullString(p.Diameter), nullString(p.Gravity),
		nullString(p.OrbitalPeriod), nullString(p.RotationPeriod), nullString(p.Population),
		nullString(p.SurfaceWater), nullString(p.Terrain), nullString(p.Description),
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert planet: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (q queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(q.q.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (q queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(q.q.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users.
func (q queries) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := q.q.Query(ctx, `SELECT `+userColumns+` FROM "user" ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return collect(rows, scanUser, "users")
}

// GetPerson retrieves a person by ID.
func (q queries) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	person, err := scanPerson(q.q.QueryRow(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("person %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPeople retrieves all people.
func (q queries) ListPeople(ctx context.Context) ([]*models.Person, error) {
	rows, err := q.q.Query(ctx, `SELECT `+personColumns+` FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return collect(rows, scanPerson, "people")
}

// GetPlanet retrieves a planet by ID.
func (q queries) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	planet, err := scanPlanet(q.q.QueryRow(ctx, `SELECT `+planetColumns+` FROM planet WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("planet %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planet: %w", err)
	}
	return planet, nil
}

// ListPlanets retrieves all planets.
func (q queries) ListPlanets(ctx context.Context) ([]*models.Planet, error) {
	rows, err := q.q.Query(ctx, `SELECT `+planetColumns+` FROM planet ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}
	return collect(rows, scanPlanet, "planets")
}

// ListFavoritesByUser retrieves the favorites of a user in insertion order.
func (q queries) ListFavoritesByUser(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	rows, err := q.q.Query(ctx, favoriteSelect+` WHERE f.user_id = $1 ORDER BY f.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites by user: %w", err)
	}
	return collect(rows, scanFavorite, "favorites")
}

// FindFavorite retrieves the favorite of a user for a target.
func (q queries) FindFavorite(ctx context.Context, userID int64, target models.Target) (*models.Favorite, error) {
	column := "f.people_id"
	if target.Kind == models.KindPlanet {
		column = "f.planet_id"
	}

	fav, err := scanFavorite(q.q.QueryRow(ctx,
		favoriteSelect+` WHERE f.user_id = $1 AND `+column+` = $2`, userID, target.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("favorite %s of user %d: %w", target, userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return fav, nil
}

// CreateFavorite inserts a new favorite.
func (q queries) CreateFavorite(ctx context.Context, fav *models.Favorite) error {
	if err := fav.Target.Validate(); err != nil {
		return err
	}

	var peopleID, planetID *int64
	id := fav.Target.ID
	if fav.Target.Kind == models.KindPeople {
		peopleID = &id
	} else {
		planetID = &id
	}

	err := q.q.QueryRow(ctx,
		`INSERT INTO favorite (user_id, people_id, planet_id, date_added)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		fav.UserID, peopleID, planetID, timeOrNull(fav.DateAdded),
	).Scan(&fav.ID)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", translateError(err))
	}
	return nil
}

// DeleteFavorite removes a favorite by ID.
func (q queries) DeleteFavorite(ctx context.Context, id int64) error {
	tag, err := q.q.Exec(ctx, `DELETE FROM favorite WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favorite %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error), what string) ([]*T, error) {
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}
	return out, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	var subscribed *time.Time
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &subscribed); err != nil {
		return nil, err
	}
	u.SubscriptionDate = timeFromNull(subscribed)
	return u, nil
}

func scanPerson(row pgx.Row) (*models.Person, error) {
	p := &models.Person{}
	err := row.Scan(&p.ID, &p.Name, &p.Height, &p.Mass, &p.HairColor, &p.SkinColor,
		&p.EyeColor, &p.BirthYear, &p.Gender, &p.Description)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPlanet(row pgx.Row) (*models.Planet, error) {
	p := &models.Planet{}
	err := row.Scan(&p.ID, &p.Name, &p.Climate, &p.Diameter, &p.Gravity, &p.OrbitalPeriod,
		&p.RotationPeriod, &p.Population, &p.SurfaceWater, &p.Terrain, &p.Description)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanFavorite(row pgx.Row) (*models.Favorite, error) {
	fav := &models.Favorite{}
	var peopleID, planetID *int64
	var added *time.Time
	var name *string

	if err := row.Scan(&fav.ID, &fav.UserID, &peopleID, &planetID, &added, &name); err != nil {
		return nil, err
	}

	switch {
	case peopleID != nil:
		fav.Target = models.PeopleTarget(*peopleID)
	case planetID != nil:
		fav.Target = models.PlanetTarget(*planetID)
	}
	fav.TargetName = name
	fav.DateAdded = timeFromNull(added)
	return fav, nil
}
