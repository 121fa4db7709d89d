package api

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mmynk/holocron/internal/middleware"
	"github.com/mmynk/holocron/internal/service"
)

const msgInternalError = "Internal server error"

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + msgInternalError + `"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteJSONError writes {"error": message} with the given status.
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps a service error to its HTTP status. Internal errors
// are logged and answered with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := service.CodeOf(err)
	if code == service.CodeInternal {
		middleware.Logger(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		WriteJSONError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	WriteJSONError(w, httpStatus(code), err.Error())
}

func httpStatus(code service.Code) int {
	switch code {
	case service.CodeInvalidArgument, service.CodeConflict:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
