package middleware

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
