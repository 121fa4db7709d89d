// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/holocron/internal/api"
	"github.com/mmynk/holocron/internal/auth"
	"github.com/mmynk/holocron/internal/config"
	"github.com/mmynk/holocron/internal/seed"
	"github.com/mmynk/holocron/internal/service"
	"github.com/mmynk/holocron/internal/storage"
	"github.com/mmynk/holocron/internal/storage/postgres"
	"github.com/mmynk/holocron/internal/storage/sqlite"
)

// tokenDuration is the lifetime of tokens accepted in jwt auth mode.
const tokenDuration = 24 * time.Hour

// App is the assembled server.
type App struct {
	cfg    *config.Config
	store  storage.SeedableStore
	server *http.Server
}

// OpenStore opens PostgreSQL when cfg has a postgres DATABASE_URL and the
// SQLite file at cfg.DBPath otherwise.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.SeedableStore, error) {
	if cfg.UsePostgres() {
		store, err := postgres.New(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", "postgres")
		return store, nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
	}
	slog.Info("Storage initialized", "driver", "sqlite", "database", cfg.DBPath)
	return store, nil
}

// NewIdentityResolver returns the resolver selected by cfg.AuthMode. In jwt
// mode it also returns the manager that signs and checks tokens; in param
// mode the manager is nil.
func NewIdentityResolver(cfg *config.Config) (auth.IdentityResolver, *auth.JWTManager, error) {
	switch cfg.AuthMode {
	case config.AuthModeParam:
		return auth.NewParamResolver(cfg.DefaultUserID), nil, nil
	case config.AuthModeJWT:
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenDuration)
		return auth.NewTokenResolver(jwtManager), jwtManager, nil
	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

// New opens the store, optionally seeds it and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SeedOnStart {
		if _, err := seed.Run(ctx, store); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	resolver, jwtManager, err := NewIdentityResolver(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	var authService *service.AuthService
	if jwtManager != nil {
		authService = service.NewAuthService(store, jwtManager)
	}

	router := api.NewRouter(api.RouterConfig{
		Catalog:            service.NewCatalogService(store),
		Favorites:          service.NewFavoriteService(store),
		Auth:               authService,
		Health:             store,
		Identity:           resolver,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
	})

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		// h2c serves HTTP/2 without TLS next to HTTP/1.1.
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{cfg: cfg, store: store, server: server}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// listener fails. In-flight requests get cfg.ShutdownTimeout to finish.
// The store is closed before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting",
			"address", a.server.Addr,
			"url", fmt.Sprintf("http://localhost%s", a.server.Addr),
			"auth_mode", a.cfg.AuthMode,
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Warn("Shutdown signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("Server shut down gracefully")
	return nil
}
