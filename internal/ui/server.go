// Package ui serves the podcast index landing page.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m1ck43l/web-ui/internal/ui/notifier"
	"github.com/m1ck43l/web-ui/internal/ui/resources"
	"github.com/m1ck43l/web-ui/internal/ui/router"
	"github.com/m1ck43l/web-ui/pkg/core"
	"golang.org/x/sync/errgroup"
)

// watchDebounce coalesces the burst of writes sqlite makes per transaction.
const watchDebounce = 250 * time.Millisecond

// Server is the main UI server.
type Server struct {
	source      core.Source
	apiSource   core.Source
	port        int
	watch       bool
	watchPath   string
	maxEpisodes int
	logger      *slog.Logger
	notifier    *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	// Source feeds the landing page.
	Source core.Source
	// APISource, when set, is served under /api.
	APISource   core.Source
	Port        int
	Watch       bool
	WatchPath   string
	MaxEpisodes int
	Logger      *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		source:      cfg.Source,
		apiSource:   cfg.APISource,
		port:        cfg.Port,
		watch:       cfg.Watch,
		watchPath:   cfg.WatchPath,
		maxEpisodes: cfg.MaxEpisodes,
		logger:      logger,
		notifier:    notifier.New(),
	}
}

// Handler builds the router with middleware and all feature routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Options{
		Source:      s.source,
		APISource:   s.apiSource,
		Notifier:    s.notifier,
		Logger:      s.logger,
		MaxEpisodes: s.maxEpisodes,
		IsDev:       s.IsDev(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", ln.Addr().(*net.TCPAddr).Port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start index watcher if enabled
	if s.watch {
		if s.watchPath == "" {
			s.logger.Warn("watch requested without a local index, ignoring")
		} else {
			eg.Go(func() error {
				return s.watchIndex(egctx)
			})
		}
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true when built with the dev tag.
func (s *Server) IsDev() bool {
	return resources.IsDev
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchIndex reloads every open landing page when the index file changes.
// The parent directory is watched so the journal files sqlite writes next
// to the database are seen too.
func (s *Server) watchIndex(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.watchPath)
	base := filepath.Base(s.watchPath)
	if err := watcher.Add(dir); err != nil {
		s.logger.Error("failed to watch index directory", "dir", dir, "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isIndexFile(filepath.Base(event.Name), base) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.logger.Debug("index changed, reloading landing pages", "file", name, "streams", s.notifier.Len())
				s.notifier.Broadcast("index updated")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// isIndexFile matches the database file and its -wal, -shm and -journal
// companions.
func isIndexFile(name, base string) bool {
	return name == base || strings.HasPrefix(name, base+"-")
}
