package landing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ck43l/web-ui/pkg/core"
)

func TestLoad_JoinsBothReads(t *testing.T) {
	src := newGatedSource(true)

	done := make(chan struct{})
	var (
		res Result
		err error
	)
	go func() {
		res, err = Load(context.Background(), src, 7)
		close(done)
	}()

	stats, episodes := src.takeCalls(t)
	episodes.resolve(reply{episodes: fixtureEpisodes()})

	select {
	case <-done:
		t.Fatal("Load returned before both reads settled")
	default:
	}

	stats.resolve(reply{stats: fixtureStats()})
	<-done

	require.NoError(t, err)
	assert.Equal(t, fixtureStats(), res.Stats)
	assert.Equal(t, fixtureEpisodes(), res.RecentEpisodes)
}

func TestLoad_FailureCancelsSibling(t *testing.T) {
	src := newGatedSource(true)

	errCh := make(chan error, 1)
	go func() {
		_, err := Load(context.Background(), src, 7)
		errCh <- err
	}()

	stats, _ := src.takeCalls(t)
	stats.resolve(reply{err: core.ErrDecode})

	// The episodes read is never resolved; it returns through cancellation.
	err := <-errCh
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDecode)
	assert.Contains(t, err.Error(), "stats")
}

func TestLoad_ParentCancelled(t *testing.T) {
	src := newGatedSource(true)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := Load(ctx, src, 7)
		errCh <- err
	}()

	src.takeCalls(t)
	cancel()

	assert.True(t, errors.Is(<-errCh, context.Canceled))
}
