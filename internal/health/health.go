// Package health exposes a minimal liveness endpoint so an external uptime
// monitor can observe that the process is up. It has no interaction with bot
// logic.
package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Router builds the liveness router.
func Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", handle)
	r.Get("/healthz", handle)
	return r
}

func handle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Start begins serving the liveness endpoint on addr in a background
// goroutine. Fire and forget; the server stops only with the process.
func Start(addr string, logger zerolog.Logger) {
	go func() {
		logger.Info().Str("addr", addr).Msg("Liveness endpoint listening")
		if err := http.ListenAndServe(addr, Router()); err != nil {
			logger.Error().Err(err).Msg("Liveness endpoint stopped")
		}
	}()
}
