package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mmynk/holocron/internal/service"
	"github.com/mmynk/holocron/internal/validation"
)

// AuthHandler serves POST /auth/login.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login exchanges an email and password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: NewUserResponse(user)})
}
