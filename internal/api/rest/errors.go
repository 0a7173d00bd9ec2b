package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]string{"error": message}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error(
			"failed to encode an error response",
			"error", err,
			"response", response,
		)
	}
}
