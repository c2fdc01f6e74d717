package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m1ck43l/web-ui/internal/cli/output"
	"github.com/m1ck43l/web-ui/internal/landing"
	"github.com/m1ck43l/web-ui/pkg/core"
	"github.com/spf13/cobra"
)

// peekResult is the JSON document printed by peek.
type peekResult struct {
	Stats          core.StatsSnapshot    `json:"stats"`
	RecentEpisodes []core.EpisodeSummary `json:"recentEpisodes"`
}

// NewPeekCommand creates the peek command.
func NewPeekCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peek",
		Short: "Load the landing page data once and print it",
		Long: `Run one landing page load without a browser and print what the page
would show: the index statistics and the most recent podcasts.

The command fails when the load fails, the same way the page shows its
retry panel.`,
		Example: `  # Print the landing page data
  webui peek

  # Ten recent podcasts from a local index, as JSON
  webui peek --index podcastindex_feeds.db --max 10 -o json`,
		Args: cobra.NoArgs,
		RunE: runPeek,
	}

	// Read through the config loader as recent_episodes.
	cmd.Flags().Int("max", 0, "Number of recent podcasts to load (default: 7)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default: 10s)")

	return cmd
}

func runPeek(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	src, err := openDataSource(cc.Cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	surface := landing.SurfaceFunc(func(s landing.ViewState) {
		cc.Logger.Debug("landing view rendered",
			"loading", s.Loading,
			"failed", s.Failed(),
			"episodes", len(s.RecentEpisodes),
		)
	})
	view := landing.New(src, surface,
		landing.WithMaxEpisodes(cc.Cfg.RecentEpisodes),
		landing.WithLogger(cc.Logger),
	)

	view.Activate(cmd.Context())
	view.Wait()
	state := view.State()
	view.Deactivate()

	if state.Failed() {
		return fmt.Errorf("failed to load landing page from %s: %s", src.Describe(cc.Cfg), state.Failure.Message)
	}
	if state.Loading {
		// Only possible when the command context was cancelled.
		return fmt.Errorf("landing page load was cancelled: %w", cmd.Context().Err())
	}

	return renderPeek(cc.Renderer, state)
}

func renderPeek(r *output.Renderer, state landing.ViewState) error {
	if r.Mode() == output.ModeJSON {
		episodes := state.RecentEpisodes
		if episodes == nil {
			episodes = []core.EpisodeSummary{}
		}
		return r.JSON(peekResult{Stats: state.Stats, RecentEpisodes: episodes})
	}

	s := state.Stats
	r.Table("Index Statistics",
		[]output.Column{{Header: "Window"}, {Header: "Feeds", AlignRight: true}},
		[][]string{
			{"Total", s.FeedCountTotal.String()},
			{"3 days", s.FeedCount3Days.String()},
			{"10 days", s.FeedCount10Days.String()},
			{"30 days", s.FeedCount30Days.String()},
			{"60 days", s.FeedCount60Days.String()},
			{"90 days", s.FeedCount90Days.String()},
		},
	)

	if len(state.RecentEpisodes) == 0 {
		r.Println("No recent podcasts.")
		return nil
	}

	rows := make([][]string, len(state.RecentEpisodes))
	for i, e := range state.RecentEpisodes {
		published := ""
		if e.DatePublished > 0 {
			published = e.PublishedAt().UTC().Format(time.DateTime)
		}
		rows[i] = []string{strconv.Itoa(i + 1), e.Title, e.FeedTitle, published}
	}
	r.Table("Recent Podcasts",
		[]output.Column{{Header: "#", AlignRight: true}, {Header: "Title"}, {Header: "Feed"}, {Header: "Published"}},
		rows,
	)
	return nil
}
