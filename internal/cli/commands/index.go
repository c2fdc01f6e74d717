package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/m1ck43l/web-ui/internal/index"
	"github.com/spf13/cobra"
)

// NewIndexCommand creates the index command group.
func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage a local podcast index database",
		Long: `Manage the local sqlite database that serve and peek read with --index.

The schema is a subset of the public podcastindex.org database dump, so a
downloaded dump can be used directly.`,
	}

	cmd.AddCommand(newIndexInitCommand())
	return cmd
}

func newIndexInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <path>",
		Short: "Create or upgrade an index database",
		Example: `  webui index init podcastindex_feeds.db
  webui serve --index podcastindex_feeds.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			path := args[0]

			if dir := filepath.Dir(path); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create index directory: %w", err)
				}
			}

			store := index.NewStore(cc.Logger)
			if err := store.Open(path); err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(); err != nil {
				return err
			}
			version, err := store.SchemaVersion()
			if err != nil {
				return err
			}

			cc.Renderer.Println(fmt.Sprintf("Initialized index %s (schema version %d)", path, version))
			return nil
		},
	}
}
