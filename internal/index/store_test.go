package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/internal/testutil"
	"github.com/m1ck43l/web-ui/pkg/core"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return testNow.Add(-time.Duration(d) * 24 * time.Hour)
}

func setupTestStore(t *testing.T, podcasts ...Podcast) *Store {
	t.Helper()

	s := NewStore(testutil.NewTestLogger(t))
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	s.SetClock(func() time.Time { return testNow })

	for _, p := range podcasts {
		require.NoError(t, s.AddPodcast(context.Background(), p))
	}
	return s
}

func TestStore_Migrate(t *testing.T) {
	s := setupTestStore(t)

	version, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Re-running is a no-op.
	require.NoError(t, s.Migrate())
}

func TestStore_Stats(t *testing.T) {
	s := setupTestStore(t,
		Podcast{ID: 1, Title: "one day", NewestItemPubdate: daysAgo(1)},
		Podcast{ID: 2, Title: "five days", NewestItemPubdate: daysAgo(5)},
		Podcast{ID: 3, Title: "twenty days", NewestItemPubdate: daysAgo(20)},
		Podcast{ID: 4, Title: "fifty days", NewestItemPubdate: daysAgo(50)},
		Podcast{ID: 5, Title: "eighty days", NewestItemPubdate: daysAgo(80)},
		Podcast{ID: 6, Title: "a year", NewestItemPubdate: daysAgo(365)},
		Podcast{ID: 7, Title: "never published"},
	)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.StatsSnapshot{
		FeedCountTotal:  "7",
		FeedCount3Days:  "1",
		FeedCount10Days: "2",
		FeedCount30Days: "3",
		FeedCount60Days: "4",
		FeedCount90Days: "5",
	}, stats)
}

func TestStore_Stats_GroupsDigits(t *testing.T) {
	podcasts := make([]Podcast, 1200)
	for i := range podcasts {
		podcasts[i] = Podcast{ID: int64(i + 1), Title: "feed", NewestItemPubdate: daysAgo(1)}
	}
	s := setupTestStore(t, podcasts...)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Count("1,200"), stats.FeedCountTotal)
	assert.Equal(t, core.Count("1,200"), stats.FeedCount3Days)
}

func TestStore_RecentEpisodes(t *testing.T) {
	s := setupTestStore(t,
		Podcast{ID: 1, Title: "Oldest", NewestItemPubdate: daysAgo(9), Link: "https://one.example"},
		Podcast{ID: 2, Title: "Newest", NewestItemPubdate: daysAgo(1), ImageURL: "https://two.example/art.png"},
		Podcast{ID: 3, Title: "Middle", NewestItemPubdate: daysAgo(4), NewestEnclosureURL: "https://three.example/ep.mp3"},
		Podcast{ID: 4, Title: "Dead", NewestItemPubdate: daysAgo(0), Dead: true},
		Podcast{ID: 5, Title: "Empty"},
	)

	episodes, err := s.RecentEpisodes(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, episodes, 3)

	titles := []string{episodes[0].Title, episodes[1].Title, episodes[2].Title}
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles)

	assert.Equal(t, int64(2), episodes[0].FeedID)
	assert.Equal(t, "https://two.example/art.png", episodes[0].Artwork())
	assert.Equal(t, daysAgo(1).Unix(), episodes[0].DatePublished)
	assert.Equal(t, "https://three.example/ep.mp3", episodes[1].EnclosureURL)
	assert.Equal(t, "https://one.example", episodes[2].Link)
}

func TestStore_RecentEpisodes_Limit(t *testing.T) {
	var podcasts []Podcast
	for i := 1; i <= 10; i++ {
		podcasts = append(podcasts, Podcast{ID: int64(i), Title: "feed", NewestItemPubdate: daysAgo(i)})
	}
	s := setupTestStore(t, podcasts...)

	episodes, err := s.RecentEpisodes(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, episodes, 7)
	assert.Equal(t, int64(1), episodes[0].ID)

	none, err := s.RecentEpisodes(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podcastindex_feeds.db")

	s := NewStore(testutil.NewTestLogger(t))
	require.NoError(t, s.Open(path))
	require.NoError(t, s.Migrate())
	require.NoError(t, s.AddPodcast(context.Background(), Podcast{ID: 1, Title: "feed", NewestItemPubdate: time.Now()}))
	require.NoError(t, s.Close())

	reopened := NewStore(nil)
	require.NoError(t, reopened.Open(path))
	defer func() { _ = reopened.Close() }()
	assert.Equal(t, path, reopened.Path())

	stats, err := reopened.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Count("1"), stats.FeedCountTotal)
	assert.Equal(t, core.Count("1"), stats.FeedCount3Days)
}

func TestStore_NotOpen(t *testing.T) {
	s := NewStore(nil)

	_, err := s.Stats(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, err, core.ErrNetwork)

	_, err = s.RecentEpisodes(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotOpen)

	assert.ErrorIs(t, s.Migrate(), ErrNotOpen)
	assert.ErrorIs(t, s.AddPodcast(context.Background(), Podcast{ID: 1}), ErrNotOpen)
	assert.NoError(t, s.Close())
}

func TestStore_QueryErrorsAreNetworkFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewStoreWithDB(db, testutil.NewTestLogger(t))
	boom := errors.New("disk I/O error")

	mock.ExpectQuery("FROM podcasts").WillReturnError(boom)
	_, err = s.Stats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNetwork)
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery("FROM podcasts").WithArgs(7).WillReturnError(boom)
	_, err = s.RecentEpisodes(context.Background(), 7)
	assert.ErrorIs(t, err, core.ErrNetwork)

	rows := sqlmock.NewRows([]string{"id", "title", "link", "imageUrl", "newestItemPubdate", "newestEnclosureUrl"}).
		AddRow("not-a-number", "t", "", "", 1, "")
	mock.ExpectQuery("FROM podcasts").WithArgs(7).WillReturnRows(rows)
	_, err = s.RecentEpisodes(context.Background(), 7)
	assert.ErrorIs(t, err, core.ErrNetwork)

	assert.NoError(t, mock.ExpectationsWereMet())
}
