package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Praneshv25/KMSFL-Data/containers"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var redisURL string

func TestMain(m *testing.M) {
	c := containers.NewRedisContainer()
	redisURL = c.URL()

	code := m.Run()
	c.Shutdown()
	os.Exit(code)
}

type standing struct {
	Owner string
	Wins  int
}

func TestRedis_roundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	var got []standing
	found, err := c.Get(ctx, "standings:2019", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := []standing{{Owner: "Kush", Wins: 10}, {Owner: "Atul", Wins: 8}}
	require.NoError(t, c.Set(ctx, "standings:2019", want))

	found, err = c.Get(ctx, "standings:2019", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx))
	found, err = c.Get(ctx, "standings:2019", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_invalidateEmpty(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.Invalidate(ctx))
}

func TestNewRedis_badURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Invalidate(ctx))

	log, _ := test.NewNullLogger()
	calls := 0
	load := func() ([]standing, error) {
		calls++
		return []standing{{Owner: "Kush", Wins: 10}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Remember(ctx, c, log, "remember", load)
		require.NoError(t, err)
		assert.Equal(t, []standing{{Owner: "Kush", Wins: 10}}, got)
	}
	assert.Equal(t, 1, calls)
}

func TestRemember_loadError(t *testing.T) {
	log, _ := test.NewNullLogger()
	loadErr := errors.New("boom")

	_, err := Remember(context.Background(), NewNop(), log, "k", func() (int, error) {
		return 0, loadErr
	})
	assert.ErrorIs(t, err, loadErr)
}

func TestRemember_nopAlwaysLoads(t *testing.T) {
	log, _ := test.NewNullLogger()
	calls := 0
	for i := 0; i < 2; i++ {
		v, err := Remember(context.Background(), NewNop(), log, "k", func() (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, calls)
}

func TestRemember_closedCacheStillLoads(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, redisURL, time.Minute)
	require.NoError(t, err)
	c.Close()

	log, hook := test.NewNullLogger()
	v, err := Remember(ctx, c, log, "k", func() (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.AllEntries()[0].Level)
	assert.Equal(t, "cache read failed", hook.AllEntries()[0].Message)
}

func TestRedis_invalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	before, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	after, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	// The generation survives invalidating the entries.
	require.NoError(t, c.Invalidate(ctx))
	again, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+2, again)
}

func TestRemember_invalidateDuringLoad(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedis(ctx, redisURL, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	log, _ := test.NewNullLogger()
	calls := 0
	stale, err := Remember(ctx, c, log, "standings", func() ([]standing, error) {
		calls++
		// An ingest lands while the old standings are being computed.
		require.NoError(t, c.Invalidate(ctx))
		return []standing{{Owner: "Kush", Wins: 10}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []standing{{Owner: "Kush", Wins: 10}}, stale)

	fresh, err := Remember(ctx, c, log, "standings", func() ([]standing, error) {
		calls++
		return []standing{{Owner: "Kush", Wins: 11}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []standing{{Owner: "Kush", Wins: 11}}, fresh)
	assert.Equal(t, 2, calls)

	cached, err := Remember(ctx, c, log, "standings", func() ([]standing, error) {
		calls++
		return nil, errors.New("should be cached")
	})
	require.NoError(t, err)
	assert.Equal(t, []standing{{Owner: "Kush", Wins: 11}}, cached)
	assert.Equal(t, 2, calls)
}
