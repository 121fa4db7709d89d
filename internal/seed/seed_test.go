package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/holocron/internal/auth"
	"github.com/mmynk/holocron/internal/storage/sqlite"
)

func TestRun(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	summary, err := Run(ctx, store)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Users != 3 || summary.People != 5 || summary.Planets != 5 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	t.Run("Yavin IV is planet 3", func(t *testing.T) {
		planet, err := store.GetPlanet(ctx, 3)
		if err != nil {
			t.Fatalf("GetPlanet failed: %v", err)
		}
		if planet.Name != "Yavin IV" {
			t.Errorf("Expected Yavin IV, got %q", planet.Name)
		}
	})

	t.Run("passwords are hashed", func(t *testing.T) {
		user, err := store.GetUser(ctx, 1)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if user.Email != "luke@rebels.com" {
			t.Errorf("Expected luke@rebels.com, got %q", user.Email)
		}
		if user.Password == "theforce123" {
			t.Error("Expected password to be stored hashed")
		}
		if err := auth.CheckPassword(user.Password, "theforce123"); err != nil {
			t.Errorf("Stored hash does not match seed password: %v", err)
		}
		if user.SubscriptionDate.IsZero() {
			t.Error("Expected SubscriptionDate to be set")
		}
	})

	t.Run("running twice resets", func(t *testing.T) {
		if _, err := Run(ctx, store); err != nil {
			t.Fatalf("second Run failed: %v", err)
		}
		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 5 {
			t.Fatalf("Expected 5 people after reseeding, got %d", len(people))
		}
		if people[0].ID != 1 || people[0].Name != "Luke Skywalker" {
			t.Errorf("Expected IDs to restart at 1, got %d %q", people[0].ID, people[0].Name)
		}
	})
}
