package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

// favoriteSelect joins the catalog tables so the target name is resolved in
// the same query. A dangling reference yields a NULL name.
const favoriteSelect = `
	SELECT f.id, f.user_id, f.people_id, f.planet_id, f.date_added,
	       COALESCE(p.name, pl.name)
	FROM favorite f
	LEFT JOIN people p ON p.id = f.people_id
	LEFT JOIN planet pl ON pl.id = f.planet_id`

// CreateFavorite persists a new favorite.
func (q queries) CreateFavorite(ctx context.Context, fav *models.Favorite) error {
	if err := fav.Target.Validate(); err != nil {
		return err
	}
	peopleID, planetID := targetColumns(fav.Target)

	res, err := q.q.ExecContext(ctx,
		`INSERT INTO favorite (user_id, people_id, planet_id, date_added) VALUES (?, ?, ?, ?)`,
		fav.UserID, peopleID, planetID, unixOrNull(fav.DateAdded),
	)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", translateError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read favorite id: %w", err)
	}
	fav.ID = id

	return nil
}

// FindFavorite retrieves the favorite of a user for a target.
func (q queries) FindFavorite(ctx context.Context, userID int64, target models.Target) (*models.Favorite, error) {
	column := "f.people_id"
	if target.Kind == models.KindPlanet {
		column = "f.planet_id"
	}

	fav, err := scanFavorite(q.q.QueryRowContext(ctx,
		favoriteSelect+` WHERE f.user_id = ? AND `+column+` = ?`,
		userID, target.ID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("favorite %s of user %d: %w", target, userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return fav, nil
}

// ListFavoritesByUser retrieves all favorites of a user.
func (q queries) ListFavoritesByUser(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	rows, err := q.q.QueryContext(ctx, favoriteSelect+` WHERE f.user_id = ? ORDER BY f.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites by user: %w", err)
	}
	defer rows.Close()

	favorites := []*models.Favorite{}
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return favorites, nil
}

// DeleteFavorite removes a favorite by ID.
func (q queries) DeleteFavorite(ctx context.Context, id int64) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM favorite WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted favorite: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("favorite %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

func scanFavorite(row scanner) (*models.Favorite, error) {
	fav := &models.Favorite{}
	var peopleID, planetID, added sql.NullInt64
	var name sql.NullString

	if err := row.Scan(&fav.ID, &fav.UserID, &peopleID, &planetID, &added, &name); err != nil {
		return nil, err
	}

	switch {
	case peopleID.Valid:
		fav.Target = models.PeopleTarget(peopleID.Int64)
	case planetID.Valid:
		fav.Target = models.PlanetTarget(planetID.Int64)
	}
	if name.Valid {
		fav.TargetName = &name.String
	}
	fav.DateAdded = timeFromNull(added)

	return fav, nil
}

// targetColumns splits a target into the people_id and planet_id column values.
func targetColumns(t models.Target) (peopleID, planetID any) {
	if t.Kind == models.KindPeople {
		return t.ID, nil
	}
	return nil, t.ID
}
