package counter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCounter(t *testing.T) *Counter {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "counter.db")
	c, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNextIsMonotonic(t *testing.T) {
	c := openTestCounter(t)
	ctx := context.Background()

	first, err := c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)

	third, err := c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, second+1, third)
}

func TestCurrentDoesNotAdvance(t *testing.T) {
	c := openTestCounter(t)
	ctx := context.Background()

	_, err := c.Next(ctx)
	require.NoError(t, err)

	before, err := c.Current(ctx)
	require.NoError(t, err)
	after, err := c.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCounterSurvivesReopen(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "counter.db")
	ctx := context.Background()

	c, err := Open(ctx, dsn)
	require.NoError(t, err)
	n, err := c.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	reopened, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer reopened.Close()

	next, err := reopened.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, n+1, next)
}
