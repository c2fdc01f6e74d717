package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/m1ck43l/web-ui/internal/cli/config"
	"github.com/m1ck43l/web-ui/internal/cli/output"
	"github.com/m1ck43l/web-ui/internal/index"
	"github.com/m1ck43l/web-ui/internal/indexapi"
	"github.com/m1ck43l/web-ui/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// DataSource is the landing page data source selected by the configuration.
type DataSource struct {
	core.Source
	// Index is set when the source is a local index.
	Index *index.Store
}

// Close releases the local index, if any.
func (d *DataSource) Close() error {
	if d.Index != nil {
		return d.Index.Close()
	}
	return nil
}

// Describe names the source for log and status lines.
func (d *DataSource) Describe(cfg *config.Config) string {
	if d.Index != nil {
		return "index " + d.Index.Path()
	}
	return cfg.APIURL
}

// openDataSource opens the local index when one is configured and falls
// back to the podcast index API otherwise.
func openDataSource(cfg *config.Config, logger *slog.Logger) (*DataSource, error) {
	if cfg.UsesIndex() {
		if _, err := os.Stat(cfg.Index.Path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("index database does not exist: %s\nHint: create it with 'webui index init %s'", cfg.Index.Path, cfg.Index.Path)
		}

		store := index.NewStore(logger)
		if err := store.Open(cfg.Index.Path); err != nil {
			return nil, err
		}
		return &DataSource{Source: store, Index: store}, nil
	}

	client, err := indexapi.New(indexapi.Config{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return &DataSource{Source: client}, nil
}
