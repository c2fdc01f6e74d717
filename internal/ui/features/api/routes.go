package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m1ck43l/web-ui/pkg/core"
)

// SetupRoutes configures routes for the data API feature.
func SetupRoutes(router chi.Router, source core.Source, logger *slog.Logger) error {
	handlers := NewHandlers(source, logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/stats", handlers.Stats)
		r.Get("/recent/episodes", handlers.RecentEpisodes)
	})

	return nil
}
