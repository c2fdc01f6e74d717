package landing

import (
	"context"
	"fmt"

	"github.com/m1ck43l/web-ui/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Result is the joined outcome of one load sequence.
type Result struct {
	RecentEpisodes []core.EpisodeSummary
	Stats          core.StatsSnapshot
}

// Load reads recent episodes and stats from src concurrently and returns
// both, or the first error. When one read fails the other is cancelled
// through the shared context.
func Load(ctx context.Context, src core.Source, max int) (Result, error) {
	g, gctx := errgroup.WithContext(ctx)

	var res Result
	g.Go(func() error {
		episodes, err := src.RecentEpisodes(gctx, max)
		if err != nil {
			return fmt.Errorf("recent episodes: %w", err)
		}
		res.RecentEpisodes = episodes
		return nil
	})
	g.Go(func() error {
		stats, err := src.Stats(gctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		res.Stats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return res, nil
}
