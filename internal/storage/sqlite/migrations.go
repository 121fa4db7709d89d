package sqlite

import (
	"context"
	"database/sql"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: user, people and planet must be created BEFORE favorite due to
// its foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS "user" (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    subscription_date INTEGER
);

CREATE TABLE IF NOT EXISTS people (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    height TEXT,
    mass TEXT,
    hair_color TEXT,
    skin_color TEXT,
    eye_color TEXT,
    birth_year TEXT,
    gender TEXT,
    description TEXT
);

CREATE TABLE IF NOT EXISTS planet (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    climate TEXT,
    diameter TEXT,
    gravity TEXT,
    orbital_period TEXT,
    rotation_period TEXT,
    population TEXT,
    surface_water TEXT,
    terrain TEXT,
    description TEXT
);

CREATE TABLE IF NOT EXISTS favorite (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    people_id INTEGER,
    planet_id INTEGER,
    date_added INTEGER,
    FOREIGN KEY (user_id) REFERENCES "user"(id) ON DELETE CASCADE,
    FOREIGN KEY (people_id) REFERENCES people(id),
    FOREIGN KEY (planet_id) REFERENCES planet(id),
    CHECK ((people_id IS NULL) <> (planet_id IS NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_favorite_user_people ON favorite(user_id, people_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_favorite_user_planet ON favorite(user_id, planet_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
