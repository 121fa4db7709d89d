package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/holocron/internal/auth"
	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

// AuthService issues bearer tokens for seeded users. It is only mounted when
// requests are identified by token.
type AuthService struct {
	store      storage.Store
	jwtManager *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(store storage.Store, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		store:      store,
		jwtManager: jwtManager,
	}
}

// Login checks email and password and returns a signed token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)
	slog.Info("Login request", "email", email)

	// Validate input
	if email == "" || password == "" {
		return "", nil, NewError(CodeInvalidArgument, errors.New("email and password are required"))
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn("Login failed", "email", email, "error", err)
		return "", nil, NewError(CodeUnauthenticated, auth.ErrInvalidCredentials)
	}
	if err != nil {
		slog.Error("Login failed - could not get user", "email", email, "error", err)
		return "", nil, NewError(CodeInternal, err)
	}

	if err := auth.CheckPassword(user.Password, password); err != nil {
		slog.Warn("Login failed", "email", email, "user_id", user.ID, "error", err)
		return "", nil, NewError(CodeUnauthenticated, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, NewError(CodeInternal, err)
	}

	slog.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return token, user, nil
}
