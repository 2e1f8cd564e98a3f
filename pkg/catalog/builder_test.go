package catalog

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/s3v-cli/s3v/pkg/storage/memvs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock() func() time.Time {
	t := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func seed(t *testing.T, store *memvs.Store) {
	t.Helper()
	ctx := context.Background()
	for _, put := range []struct {
		key  string
		body string
	}{
		{"logs/app.log", "a"},
		{"logs/app.log", "b"},
		{"logs/app.log", "c"},
		{"logs/app.log.bak", "z"},
		{"other/file", "y"},
	} {
		_, err := store.Put(ctx, put.key, bytes.NewReader([]byte(put.body)))
		require.NoError(t, err)
	}
}

func TestBuildKey(t *testing.T) {
	store := memvs.New(memvs.WithClock(testClock()), memvs.WithPageSize(2))
	seed(t, store)

	b := New(store)
	c, err := b.Key(context.Background(), "logs/app.log")
	require.NoError(t, err)

	// pagination is fully drained, and the .bak key sharing the prefix is excluded
	assert.Equal(t, 3, c.Len())
	for _, r := range c.Records() {
		assert.Equal(t, "logs/app.log", r.Key)
	}

	// ascending LastModified
	records := c.Records()
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].LastModified.Before(records[i-1].LastModified))
	}
}

func TestBuildKeyNeverExisted(t *testing.T) {
	b := New(memvs.New())
	c, err := b.Key(context.Background(), "ghost")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestBuildPrefix(t *testing.T) {
	store := memvs.New(memvs.WithClock(testClock()), memvs.WithPageSize(2))
	seed(t, store)

	b := New(store)
	catalogs, err := b.Prefix(context.Background(), "logs/")
	require.NoError(t, err)
	require.Len(t, catalogs, 2)
	assert.Equal(t, "logs/app.log", catalogs[0].Key())
	assert.Equal(t, "logs/app.log.bak", catalogs[1].Key())
	assert.Equal(t, 3, catalogs[0].Len())
	assert.Equal(t, 1, catalogs[1].Len())
}

func TestBuildPreservesDeleteMarkers(t *testing.T) {
	ctx := context.Background()
	store := memvs.New(memvs.WithClock(testClock()))
	_, err := store.Put(ctx, "k", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	_, err = store.Delete(ctx, "k")
	require.NoError(t, err)

	b := New(store)
	c, err := b.Key(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	last, _ := c.At(-1)
	assert.True(t, last.IsDeleteMarker)
}
