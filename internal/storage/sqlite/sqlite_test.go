package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	luke := &models.User{
		Email:            "luke@rebels.com",
		Password:         "hash",
		FirstName:        "Luke",
		LastName:         "Skywalker",
		SubscriptionDate: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC),
	}
	if err := store.CreateUser(ctx, luke); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	vader := &models.Person{Name: "Darth Vader", Height: "202", Gender: "male"}
	if err := store.CreatePerson(ctx, vader); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	hoth := &models.Planet{Name: "Hoth", Climate: "frozen"}
	if err := store.CreatePlanet(ctx, hoth); err != nil {
		t.Fatalf("CreatePlanet failed: %v", err)
	}

	t.Run("Create assigns IDs", func(t *testing.T) {
		if luke.ID == 0 || vader.ID == 0 || hoth.ID == 0 {
			t.Errorf("Expected IDs to be assigned, got user=%d person=%d planet=%d", luke.ID, vader.ID, hoth.ID)
		}
	})

	t.Run("GetUser round-trips fields", func(t *testing.T) {
		got, err := store.GetUser(ctx, luke.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Email != luke.Email || got.FirstName != "Luke" || got.LastName != "Skywalker" {
			t.Errorf("User mismatch: got %+v", got)
		}
		if !got.SubscriptionDate.Equal(luke.SubscriptionDate) {
			t.Errorf("SubscriptionDate mismatch: got %v, want %v", got.SubscriptionDate, luke.SubscriptionDate)
		}
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "luke@rebels.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != luke.ID || got.Password != "hash" {
			t.Errorf("User mismatch: got %+v", got)
		}
	})

	t.Run("Get returns ErrNotFound for nonexistent rows", func(t *testing.T) {
		if _, err := store.GetUser(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUser: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByEmail(ctx, "vader@empire.gov"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetPerson(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPerson: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetPlanet(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPlanet: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("NULL descriptive columns read as empty strings", func(t *testing.T) {
		got, err := store.GetPlanet(ctx, hoth.ID)
		if err != nil {
			t.Fatalf("GetPlanet failed: %v", err)
		}
		if got.Climate != "frozen" {
			t.Errorf("Climate mismatch: got %q", got.Climate)
		}
		if got.Terrain != "" {
			t.Errorf("Expected empty Terrain, got %q", got.Terrain)
		}
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		dup := &models.User{Email: luke.Email, Password: "x", FirstName: "L", LastName: "S"}
		if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("Favorite lifecycle", func(t *testing.T) {
		fav := models.NewFavorite(luke.ID, models.PlanetTarget(hoth.ID))
		err := store.InTx(ctx, func(tx storage.Tx) error {
			return tx.CreateFavorite(ctx, fav)
		})
		if err != nil {
			t.Fatalf("CreateFavorite failed: %v", err)
		}
		if fav.ID == 0 {
			t.Error("Expected favorite ID to be generated")
		}

		found, err := store.FindFavorite(ctx, luke.ID, models.PlanetTarget(hoth.ID))
		if err != nil {
			t.Fatalf("FindFavorite failed: %v", err)
		}
		if found.TargetName == nil || *found.TargetName != "Hoth" {
			t.Errorf("Expected target name Hoth, got %v", found.TargetName)
		}
		if found.Target != models.PlanetTarget(hoth.ID) {
			t.Errorf("Target mismatch: got %v", found.Target)
		}

		// Same id as a person is a different target.
		if _, err := store.FindFavorite(ctx, luke.ID, models.PeopleTarget(hoth.ID)); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for people target, got %v", err)
		}

		err = store.InTx(ctx, func(tx storage.Tx) error {
			return tx.DeleteFavorite(ctx, fav.ID)
		})
		if err != nil {
			t.Fatalf("DeleteFavorite failed: %v", err)
		}

		err = store.InTx(ctx, func(tx storage.Tx) error {
			return tx.DeleteFavorite(ctx, fav.ID)
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("Unique index rejects duplicate favorite", func(t *testing.T) {
		create := func() error {
			return store.InTx(ctx, func(tx storage.Tx) error {
				return tx.CreateFavorite(ctx, models.NewFavorite(luke.ID, models.PeopleTarget(vader.ID)))
			})
		}
		if err := create(); err != nil {
			t.Fatalf("first CreateFavorite failed: %v", err)
		}
		if err := create(); !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("Invalid target is never written", func(t *testing.T) {
		err := store.InTx(ctx, func(tx storage.Tx) error {
			return tx.CreateFavorite(ctx, &models.Favorite{UserID: luke.ID})
		})
		if !errors.Is(err, models.ErrInvalidTarget) {
			t.Errorf("Expected ErrInvalidTarget, got %v", err)
		}

		_, err = store.db.ExecContext(ctx,
			`INSERT INTO favorite (user_id, people_id, planet_id) VALUES (?, ?, ?)`,
			luke.ID, vader.ID, hoth.ID)
		if err == nil {
			t.Error("Expected CHECK constraint to reject a favorite with both targets")
		}
	})

	t.Run("Rollback discards writes", func(t *testing.T) {
		before, err := store.ListFavoritesByUser(ctx, luke.ID)
		if err != nil {
			t.Fatalf("ListFavoritesByUser failed: %v", err)
		}

		boom := errors.New("boom")
		err = store.InTx(ctx, func(tx storage.Tx) error {
			if err := tx.CreateFavorite(ctx, models.NewFavorite(luke.ID, models.PlanetTarget(hoth.ID))); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}

		after, err := store.ListFavoritesByUser(ctx, luke.ID)
		if err != nil {
			t.Fatalf("ListFavoritesByUser failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("Expected %d favorites after rollback, got %d", len(before), len(after))
		}
	})

	t.Run("Deleting a user cascades to favorites", func(t *testing.T) {
		han := &models.User{Email: "han@smugglers.com", Password: "x", FirstName: "Han", LastName: "Solo"}
		if err := store.CreateUser(ctx, han); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		err := store.InTx(ctx, func(tx storage.Tx) error {
			return tx.CreateFavorite(ctx, models.NewFavorite(han.ID, models.PlanetTarget(hoth.ID)))
		})
		if err != nil {
			t.Fatalf("CreateFavorite failed: %v", err)
		}

		if _, err := store.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = ?`, han.ID); err != nil {
			t.Fatalf("delete user failed: %v", err)
		}

		favs, err := store.ListFavoritesByUser(ctx, han.ID)
		if err != nil {
			t.Fatalf("ListFavoritesByUser failed: %v", err)
		}
		if len(favs) != 0 {
			t.Errorf("Expected favorites to be deleted with the user, got %d", len(favs))
		}
	})
}

func TestListFavoritesByUser_InsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Email: "leia@rebels.com", Password: "x", FirstName: "Leia", LastName: "Organa"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	var targets []models.Target
	for _, name := range []string{"Tatooine", "Alderaan", "Yavin IV"} {
		p := &models.Planet{Name: name}
		if err := store.CreatePlanet(ctx, p); err != nil {
			t.Fatalf("CreatePlanet failed: %v", err)
		}
		targets = append(targets, models.PlanetTarget(p.ID))
	}
	person := &models.Person{Name: "Obi-Wan Kenobi"}
	if err := store.CreatePerson(ctx, person); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	targets = append(targets, models.PeopleTarget(person.ID))

	// Insert in reverse to make sure order follows insertion, not target id.
	for i := len(targets) - 1; i >= 0; i-- {
		target := targets[i]
		err := store.InTx(ctx, func(tx storage.Tx) error {
			return tx.CreateFavorite(ctx, models.NewFavorite(user.ID, target))
		})
		if err != nil {
			t.Fatalf("CreateFavorite failed: %v", err)
		}
	}

	favs, err := store.ListFavoritesByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListFavoritesByUser failed: %v", err)
	}
	if len(favs) != len(targets) {
		t.Fatalf("Expected %d favorites, got %d", len(targets), len(favs))
	}
	for i, fav := range favs {
		want := targets[len(targets)-1-i]
		if fav.Target != want {
			t.Errorf("favorite %d: got target %v, want %v", i, fav.Target, want)
		}
	}

	empty, err := store.ListFavoritesByUser(ctx, 12345)
	if err != nil {
		t.Fatalf("ListFavoritesByUser failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", empty)
	}
}

func TestListFavoritesByUser_DeletedPerson(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Email: "han@smugglers.com", Password: "x", FirstName: "Han", LastName: "Solo"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	person := &models.Person{Name: "Greedo"}
	if err := store.CreatePerson(ctx, person); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	err := store.InTx(ctx, func(tx storage.Tx) error {
		return tx.CreateFavorite(ctx, models.NewFavorite(user.ID, models.PeopleTarget(person.ID)))
	})
	if err != nil {
		t.Fatalf("CreateFavorite failed: %v", err)
	}

	// The schema refuses to orphan a favorite, so remove the person on a
	// connection with foreign keys switched off.
	conn, err := store.db.Conn(ctx)
	if err != nil {
		t.Fatalf("Failed to get connection: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		t.Fatalf("Failed to disable foreign keys: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, person.ID); err != nil {
		t.Fatalf("Failed to delete person: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	conn.Close()

	favs, err := store.ListFavoritesByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListFavoritesByUser failed: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("Expected 1 favorite, got %d", len(favs))
	}
	if favs[0].Target != models.PeopleTarget(person.ID) {
		t.Errorf("Expected target %v, got %v", models.PeopleTarget(person.ID), favs[0].Target)
	}
	if favs[0].TargetName != nil {
		t.Errorf("Expected nil name for a deleted person, got %q", *favs[0].TargetName)
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p := &models.Person{Name: "Han Solo"}
		if err := store.CreatePerson(ctx, p); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	people, err := store.ListPeople(ctx)
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if len(people) != 0 {
		t.Errorf("Expected no people after reset, got %d", len(people))
	}

	p := &models.Person{Name: "Luke Skywalker"}
	if err := store.CreatePerson(ctx, p); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("Expected IDs to restart at 1, got %d", p.ID)
	}
}
