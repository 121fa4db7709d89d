package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/holocron/internal/auth"
	"github.com/mmynk/holocron/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:               3000,
		DBPath:             filepath.Join(t.TempDir(), "app.db"),
		AuthMode:           config.AuthModeParam,
		DefaultUserID:      1,
		CORSAllowedOrigins: []string{"*"},
		SeedOnStart:        true,
		ShutdownTimeout:    time.Second,
	}
}

func TestNew_SeedsAndServes(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.store.Close()

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/planets/3")
	if err != nil {
		t.Fatalf("GET /planets/3 failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 from the seeded catalog, got %d", resp.StatusCode)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.AuthMode = config.AuthModeJWT // no secret

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("Expected an error for jwt mode without a secret")
	}
}

func TestNewIdentityResolver(t *testing.T) {
	cfg := testConfig(t)

	resolver, jwtManager, err := NewIdentityResolver(cfg)
	if err != nil {
		t.Fatalf("NewIdentityResolver failed: %v", err)
	}
	if _, ok := resolver.(*auth.ParamResolver); !ok {
		t.Errorf("Expected *auth.ParamResolver, got %T", resolver)
	}
	if jwtManager != nil {
		t.Error("Expected no JWT manager in param mode")
	}

	cfg.AuthMode = config.AuthModeJWT
	cfg.JWTSecret = "test-secret"
	resolver, jwtManager, err = NewIdentityResolver(cfg)
	if err != nil {
		t.Fatalf("NewIdentityResolver failed: %v", err)
	}
	if _, ok := resolver.(*auth.TokenResolver); !ok {
		t.Errorf("Expected *auth.TokenResolver, got %T", resolver)
	}
	if jwtManager == nil {
		t.Error("Expected a JWT manager in jwt mode")
	}

	cfg.AuthMode = "oauth"
	if _, _, err := NewIdentityResolver(cfg); err == nil {
		t.Error("Expected an error for an unknown auth mode")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedOnStart = false
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
