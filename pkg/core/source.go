package core

import (
	"context"
	"errors"
)

// Source failure taxonomy. Implementations wrap one of these so callers
// can tell a transport problem from a malformed response with errors.Is.
var (
	// ErrNetwork reports that a read could not complete: the request
	// failed, returned a non-success status, or the backing store errored.
	ErrNetwork = errors.New("network failure")

	// ErrDecode reports a response that is not valid JSON or lacks
	// required fields.
	ErrDecode = errors.New("decode failure")
)

// Source is a read-only provider of landing page data.
// Implementations must be safe for concurrent use: both reads are issued
// at the same time by the landing loader.
type Source interface {
	// Stats returns the aggregate feed counters.
	Stats(ctx context.Context) (StatsSnapshot, error)

	// RecentEpisodes returns at most max recently published episodes,
	// newest first.
	RecentEpisodes(ctx context.Context, max int) ([]EpisodeSummary, error)
}
