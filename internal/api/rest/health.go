package rest

import (
	"log/slog"
	"net/http"
)

// NewHealthHandler registers the liveness probe
func NewHealthHandler(mux *http.ServeMux, logger *slog.Logger) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Error("Failed to write response", "error", err)
		}
	})
}
