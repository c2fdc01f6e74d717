// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	apiFeature "github.com/m1ck43l/web-ui/internal/ui/features/api"
	homeFeature "github.com/m1ck43l/web-ui/internal/ui/features/home"
	"github.com/m1ck43l/web-ui/internal/ui/notifier"
	"github.com/m1ck43l/web-ui/internal/ui/resources"
	"github.com/m1ck43l/web-ui/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

// Options holds everything the feature routes need.
type Options struct {
	// Source feeds the landing page.
	Source core.Source
	// APISource, when set, is also served under /api.
	APISource   core.Source
	Notifier    *notifier.Notifier
	Logger      *slog.Logger
	MaxEpisodes int
	IsDev       bool
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, opts Options) error {
	// Hot reload endpoint for dev mode
	if opts.IsDev {
		setupReload(router)
	}

	// Static assets
	router.Handle(resources.StaticPrefix+"*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, opts.Source, opts.Notifier, opts.Logger, opts.MaxEpisodes, opts.IsDev); err != nil {
		return err
	}

	if opts.APISource != nil {
		if err := apiFeature.SetupRoutes(router, opts.APISource, opts.Logger); err != nil {
			return err
		}
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
