package postgres

// schema creates the tables on startup. "user" is a reserved word in
// PostgreSQL and is always quoted.
const schema = `
CREATE TABLE IF NOT EXISTS "user" (
    id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    email VARCHAR(120) NOT NULL UNIQUE,
    password VARCHAR(80) NOT NULL,
    first_name VARCHAR(80) NOT NULL,
    last_name VARCHAR(80) NOT NULL,
    subscription_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS people (
    id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    height VARCHAR(20),
    mass VARCHAR(20),
    hair_color VARCHAR(50),
    skin_color VARCHAR(50),
    eye_color VARCHAR(50),
    birth_year VARCHAR(20),
    gender VARCHAR(20),
    description TEXT
);

CREATE TABLE IF NOT EXISTS planet (
    id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    climate VARCHAR(100),
    diameter VARCHAR(50),
    gravity VARCHAR(50),
    orbital_period VARCHAR(50),
    rotation_period VARCHAR(50),
    population VARCHAR(50),
    surface_water VARCHAR(50),
    terrain VARCHAR(200),
    description TEXT
);

CREATE TABLE IF NOT EXISTS favorite (
    id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
    people_id BIGINT REFERENCES people(id),
    planet_id BIGINT REFERENCES planet(id),
    date_added TIMESTAMPTZ,
    CONSTRAINT favorite_one_target CHECK ((people_id IS NULL) <> (planet_id IS NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_favorite_user_people ON favorite(user_id, people_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_favorite_user_planet ON favorite(user_id, planet_id);
`
