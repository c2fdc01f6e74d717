// Package index serves landing page data from a local podcast index
// database in the layout of the public podcastindex sqlite dump.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/m1ck43l/web-ui/pkg/core"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ErrNotOpen is returned when the store is used before Open.
var ErrNotOpen = errors.New("index database not opened")

// StatsWindows are the day windows reported by Stats, in field order.
var StatsWindows = []int{3, 10, 30, 60, 90}

// Podcast is one row of the podcasts table.
type Podcast struct {
	ID                 int64
	URL                string
	Title              string
	Link               string
	Dead               bool
	ImageURL           string
	Author             string
	NewestItemPubdate  time.Time
	NewestEnclosureURL string
	EpisodeCount       int
	Language           string
}

// Store implements core.Source on top of a sqlite index.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

var _ core.Source = (*Store)(nil)

// NewStore creates an unopened store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		logger: logger,
		now:    time.Now,
	}
}

// NewStoreWithDB wraps an existing connection.
func NewStoreWithDB(db *sql.DB, logger *slog.Logger) *Store {
	s := NewStore(logger)
	s.db = db
	return s
}

// SetClock overrides the time source used for the stats windows.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Open opens the index at path. Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open index database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping index database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("index database opened", "path", path)
	return nil
}

// Path returns the path passed to Open.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Stats counts all feeds and the feeds that published within each of
// StatsWindows days.
func (s *Store) Stats(ctx context.Context) (core.StatsSnapshot, error) {
	if s.db == nil {
		return core.StatsSnapshot{}, fmt.Errorf("stats: %w: %w", core.ErrNetwork, ErrNotOpen)
	}

	now := s.now().Unix()
	args := make([]any, len(StatsWindows))
	for i, days := range StatsWindows {
		args[i] = now - int64(days)*86400
	}

	var total int64
	windows := make([]int64, len(StatsWindows))
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN newestItemPubdate >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN newestItemPubdate >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN newestItemPubdate >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN newestItemPubdate >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN newestItemPubdate >= ? THEN 1 ELSE 0 END), 0)
		FROM podcasts`, args...,
	).Scan(&total, &windows[0], &windows[1], &windows[2], &windows[3], &windows[4])
	if err != nil {
		return core.StatsSnapshot{}, fmt.Errorf("failed to count feeds: %w: %w", core.ErrNetwork, err)
	}

	return core.StatsSnapshot{
		FeedCountTotal:  core.FormatCount(total),
		FeedCount3Days:  core.FormatCount(windows[0]),
		FeedCount10Days: core.FormatCount(windows[1]),
		FeedCount30Days: core.FormatCount(windows[2]),
		FeedCount60Days: core.FormatCount(windows[3]),
		FeedCount90Days: core.FormatCount(windows[4]),
	}, nil
}

// RecentEpisodes returns the newest item of the most recently updated
// live feeds. The dump carries no episode titles, so the feed title is
// used for both Title and FeedTitle.
func (s *Store) RecentEpisodes(ctx context.Context, max int) ([]core.EpisodeSummary, error) {
	if s.db == nil {
		return nil, fmt.Errorf("recent episodes: %w: %w", core.ErrNetwork, ErrNotOpen)
	}
	if max <= 0 {
		return []core.EpisodeSummary{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(link, ''), COALESCE(imageUrl, ''),
		       newestItemPubdate, COALESCE(newestEnclosureUrl, '')
		FROM podcasts
		WHERE dead = 0 AND newestItemPubdate > 0
		ORDER BY newestItemPubdate DESC, id DESC
		LIMIT ?`, max)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent episodes: %w: %w", core.ErrNetwork, err)
	}
	defer func() { _ = rows.Close() }()

	episodes := make([]core.EpisodeSummary, 0, max)
	for rows.Next() {
		var e core.EpisodeSummary
		if err := rows.Scan(&e.FeedID, &e.FeedTitle, &e.Link, &e.FeedImage, &e.DatePublished, &e.EnclosureURL); err != nil {
			return nil, fmt.Errorf("failed to scan recent episode: %w: %w", core.ErrNetwork, err)
		}
		e.ID = e.FeedID
		e.Title = e.FeedTitle
		episodes = append(episodes, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent episodes: %w: %w", core.ErrNetwork, err)
	}
	return episodes, nil
}

// AddPodcast inserts or replaces a podcast row.
func (s *Store) AddPodcast(ctx context.Context, p Podcast) error {
	if s.db == nil {
		return ErrNotOpen
	}

	var newest int64
	if !p.NewestItemPubdate.IsZero() {
		newest = p.NewestItemPubdate.Unix()
	}
	dead := 0
	if p.Dead {
		dead = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO podcasts
			(id, url, title, lastUpdate, link, dead, imageUrl, itunesAuthor,
			 newestItemPubdate, newestEnclosureUrl, episodeCount, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.URL, p.Title, s.now().Unix(), p.Link, dead, p.ImageURL, p.Author,
		newest, p.NewestEnclosureURL, p.EpisodeCount, p.Language,
	)
	if err != nil {
		return fmt.Errorf("failed to add podcast %d: %w", p.ID, err)
	}
	return nil
}
