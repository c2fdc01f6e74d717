// Package home provides the landing page feature for the UI.
package home

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m1ck43l/web-ui/internal/ui/notifier"
	"github.com/m1ck43l/web-ui/pkg/core"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(
	router chi.Router,
	source core.Source,
	notify *notifier.Notifier,
	logger *slog.Logger,
	maxEpisodes int,
	isDev bool,
) error {
	handlers := NewHandlers(source, notify, logger, maxEpisodes, isDev)

	router.Get("/", handlers.HomePage)
	router.Get("/updates", handlers.HomePageUpdates)
	router.Post("/retry", handlers.Retry)

	return nil
}
