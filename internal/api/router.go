package api

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/holocron/internal/auth"
	"github.com/mmynk/holocron/internal/middleware"
	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	Catalog   *service.CatalogService
	Favorites *service.FavoriteService
	Auth      *service.AuthService // nil unless requests are identified by token
	Health    Pinger
	Identity  auth.IdentityResolver

	CORSAllowedOrigins []string
	RateLimitRequests  int // 0 disables rate limiting
	RateLimitWindow    time.Duration
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if cfg.RateLimitRequests > 0 {
		r.Use(httprate.Limit(
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				WriteJSONError(w, http.StatusTooManyRequests, "Too many requests")
			}),
		))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	catalog := NewCatalogHandler(cfg.Catalog)
	favorites := NewFavoritesHandler(cfg.Favorites)

	r.Get("/", routeIndex(r))
	r.Get("/healthz", healthz(cfg.Health))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/people", catalog.ListPeople)
	r.Get("/people/{id}", catalog.GetPerson)
	r.Get("/planets", catalog.ListPlanets)
	r.Get("/planets/{id}", catalog.GetPlanet)
	r.Get("/users", catalog.ListUsers)

	if cfg.Auth != nil {
		r.Post("/auth/login", NewAuthHandler(cfg.Auth).Login)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(cfg.Identity))

		r.Get("/users/favorites", favorites.ListFavorites)
		r.Post("/favorite/people/{id}", favorites.AddFavorite(models.KindPeople))
		r.Delete("/favorite/people/{id}", favorites.RemoveFavorite(models.KindPeople))
		r.Post("/favorite/planet/{id}", favorites.AddFavorite(models.KindPlanet))
		r.Delete("/favorite/planet/{id}", favorites.RemoveFavorite(models.KindPlanet))
	})

	return r
}

// routeIndex lists every registered endpoint as "METHOD /path".
func routeIndex(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var endpoints []string
		walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			route = strings.TrimSuffix(route, "/")
			if route == "" {
				route = "/"
			}
			endpoints = append(endpoints, method+" "+route)
			return nil
		}
		if err := chi.Walk(routes, walk); err != nil {
			writeServiceError(w, r, err)
			return
		}
		sort.Strings(endpoints)
		RespondWithJSON(w, http.StatusOK, map[string][]string{"endpoints": endpoints})
	}
}

func healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		now := time.Now().UTC().Format(time.RFC3339)
		if err := store.Ping(ctx); err != nil {
			middleware.Logger(r.Context()).Error("health check failed", "error", err)
			RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":    "unavailable",
				"timestamp": now,
			})
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": now,
		})
	}
}
