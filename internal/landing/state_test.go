package landing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/pkg/core"
)

func TestPlaceholderStats(t *testing.T) {
	assert.Equal(t, core.StatsSnapshot{
		FeedCountTotal:  "-,---,---",
		FeedCount3Days:  "--,---",
		FeedCount10Days: "---,---",
		FeedCount30Days: "---,---",
		FeedCount60Days: "---,---",
		FeedCount90Days: "---,---",
	}, PlaceholderStats())
}

func TestInitialState(t *testing.T) {
	s := InitialState()

	assert.True(t, s.Loading)
	assert.NotNil(t, s.RecentEpisodes)
	assert.Empty(t, s.RecentEpisodes)
	assert.Equal(t, PlaceholderStats(), s.Stats)
	assert.Nil(t, s.Failure)
	assert.False(t, s.Loaded())
	assert.False(t, s.Failed())
}

func TestLoadedState(t *testing.T) {
	s := LoadedState(Result{Stats: fixtureStats(), RecentEpisodes: fixtureEpisodes()})

	assert.False(t, s.Loading)
	assert.True(t, s.Loaded())
	assert.Equal(t, fixtureStats(), s.Stats)
	assert.Equal(t, fixtureEpisodes(), s.RecentEpisodes)

	empty := LoadedState(Result{Stats: fixtureStats()})
	assert.NotNil(t, empty.RecentEpisodes)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{name: "network", err: fmt.Errorf("stats: %w", core.ErrNetwork), want: FailureNetwork},
		{name: "decode", err: fmt.Errorf("recent episodes: %w", core.ErrDecode), want: FailureDecode},
		{name: "unknown", err: errors.New("boom"), want: FailureNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.err)
			assert.Equal(t, tt.want, f.Kind)
			assert.Equal(t, tt.err.Error(), f.Message)
		})
	}
}

func TestFailedState(t *testing.T) {
	s := FailedState(core.ErrDecode)

	assert.False(t, s.Loading)
	assert.True(t, s.Failed())
	require.NotNil(t, s.Failure)
	assert.Equal(t, FailureDecode, s.Failure.Kind)
	assert.Equal(t, PlaceholderStats(), s.Stats)
	assert.Empty(t, s.RecentEpisodes)
}
