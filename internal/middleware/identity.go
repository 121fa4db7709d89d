package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/mmynk/holocron/internal/auth"
)

// Identity resolves the acting user with resolver and stores the user ID in
// the request context. A malformed user_id yields 400; a missing or invalid
// bearer token yields 401.
func Identity(resolver auth.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolver.ResolveUserID(r)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrInvalidUserID):
					writeJSONError(w, http.StatusBadRequest, auth.ErrInvalidUserID.Error())
				case errors.Is(err, auth.ErrMissingToken):
					writeJSONError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
				case errors.Is(err, auth.ErrInvalidToken):
					Logger(r.Context()).Warn("rejected token", "error", err)
					writeJSONError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				default:
					Logger(r.Context()).Error("failed to resolve user", "error", err)
					writeJSONError(w, http.StatusInternalServerError, "Internal server error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, loggerKey, Logger(ctx).With("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
