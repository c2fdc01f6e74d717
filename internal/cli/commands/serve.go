package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/m1ck43l/web-ui/internal/ui"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the podcast index landing page",
		Long: `Start a local web server with the podcast index landing page.

Each open page streams its own load of the index statistics and the most
recent podcasts. With --index the page reads a local podcast index database,
which is also served as JSON under /api; otherwise it reads api_url.`,
		Example: `  # Serve on the default port against podcastindex.org
  webui serve

  # Serve a local index and reload open pages when it changes
  webui serve --index podcastindex_feeds.db --watch

  # Start without auto-opening browser
  webui serve --port 3000 --no-browser`,
		RunE: runServe,
	}

	// Values are read through the config loader.
	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")
	cmd.Flags().Bool("watch", false, "Reload open pages when the index file changes")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	src, err := openDataSource(cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	serverCfg := ui.Config{
		Source:      src,
		Port:        cfg.UI.Port,
		Watch:       cfg.UI.Watch,
		MaxEpisodes: cfg.RecentEpisodes,
		Logger:      cc.Logger,
	}
	if src.Index != nil {
		serverCfg.APISource = src.Index
		serverCfg.WatchPath = src.Index.Path()
	}

	server := ui.NewServer(serverCfg)

	// Open browser if configured
	if cfg.UI.AutoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.UI.Port))
	}

	cc.Renderer.Println(fmt.Sprintf("Serving %s on http://localhost:%d", src.Describe(cfg), cfg.UI.Port))
	cc.Renderer.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
