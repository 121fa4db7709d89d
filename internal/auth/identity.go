package auth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ErrInvalidUserID is returned when a user_id parameter is present but is
// not an integer, or the request body is not valid JSON.
var ErrInvalidUserID = errors.New("user_id must be an integer")

// maxBodyBytes bounds how much of a request body the resolver will read.
const maxBodyBytes = 1 << 20

// IdentityResolver determines which user a request acts as.
// This abstraction allows swapping the request-parameter placeholder for real
// authentication without changing the favorites logic.
type IdentityResolver interface {
	ResolveUserID(r *http.Request) (int64, error)
}

// ParamResolver takes the user from the request itself: the "user_id" field
// of a JSON body for POST requests, the "user_id" query parameter otherwise.
// A request that names no user acts as DefaultUserID.
type ParamResolver struct {
	DefaultUserID int64
}

// NewParamResolver creates a ParamResolver falling back to defaultUserID.
func NewParamResolver(defaultUserID int64) *ParamResolver {
	return &ParamResolver{DefaultUserID: defaultUserID}
}

// ResolveUserID implements IdentityResolver. The request body is left
// readable for the handler.
func (p *ParamResolver) ResolveUserID(r *http.Request) (int64, error) {
	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		r.Body.Close()
		if err != nil {
			return 0, fmt.Errorf("failed to read request body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(bytes.TrimSpace(body)) > 0 {
			var payload struct {
				UserID *int64 `json:"user_id"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				return 0, fmt.Errorf("%w: %v", ErrInvalidUserID, err)
			}
			if payload.UserID != nil {
				return *payload.UserID, nil
			}
		}
		return p.DefaultUserID, nil
	}

	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return p.DefaultUserID, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

// TokenResolver takes the user from a bearer JWT issued by JWTManager.
type TokenResolver struct {
	jwtManager *JWTManager
}

// NewTokenResolver creates a resolver validating tokens with jwtManager.
func NewTokenResolver(jwtManager *JWTManager) *TokenResolver {
	return &TokenResolver{jwtManager: jwtManager}
}

// ResolveUserID implements IdentityResolver.
func (t *TokenResolver) ResolveUserID(r *http.Request) (int64, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, ErrMissingToken
	}

	// Parse Bearer token
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, ErrInvalidToken
	}

	claims, err := t.jwtManager.Validate(parts[1])
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
