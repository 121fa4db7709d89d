package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/holocron/internal/middleware"
	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/service"
)

var errInvalidID = errors.New("id must be an integer")

// CatalogHandler serves the read-only catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListPeople handles GET /people.
func (h *CatalogHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.catalog.ListPeople(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(people, NewPersonResponse))
}

// GetPerson handles GET /people/{id}.
func (h *CatalogHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	person, err := h.catalog.GetPerson(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, NewPersonResponse(person))
}

// ListPlanets handles GET /planets.
func (h *CatalogHandler) ListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.catalog.ListPlanets(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(planets, NewPlanetResponse))
}

// GetPlanet handles GET /planets/{id}.
func (h *CatalogHandler) GetPlanet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	planet, err := h.catalog.GetPlanet(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, NewPlanetResponse(planet))
}

// ListUsers handles GET /users.
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.catalog.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(users, NewUserResponse))
}

// FavoritesHandler serves the favorites endpoints. The acting user is put in
// the request context by middleware.Identity.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// ListFavorites handles GET /users/favorites.
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	favorites, err := h.favorites.ListFavorites(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, mapSlice(favorites, NewFavoriteResponse))
}

// AddFavorite returns the handler for POST /favorite/{kind}/{id}.
func (h *FavoritesHandler) AddFavorite(kind models.TargetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		userID := middleware.GetUserID(r.Context())

		fav, err := h.favorites.AddFavorite(r.Context(), userID, models.Target{Kind: kind, ID: id})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		RespondWithJSON(w, http.StatusCreated, AddFavoriteResponse{
			Message:  fmt.Sprintf("%s added to favorites successfully", kind.Label()),
			Favorite: NewFavoriteResponse(fav),
		})
	}
}

// RemoveFavorite returns the handler for DELETE /favorite/{kind}/{id}.
func (h *FavoritesHandler) RemoveFavorite(kind models.TargetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		userID := middleware.GetUserID(r.Context())

		msg, err := h.favorites.RemoveFavorite(r.Context(), userID, models.Target{Kind: kind, ID: id})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		RespondWithJSON(w, http.StatusOK, MessageResponse{Message: msg})
	}
}

// pathID parses the {id} URL parameter. Ids that match no row are left to
// the lookup.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}
