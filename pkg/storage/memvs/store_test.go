package memvs

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage/status"
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

func drain(t *testing.T, s *Store, prefix string) []model.VersionRecord {
	t.Helper()
	var out []model.VersionRecord
	err := s.ListVersions(context.Background(), prefix, func(page []model.VersionRecord, _ bool) bool {
		out = append(out, page...)
		return true
	})
	require.NoError(t, err)
	return out
}

func TestPutMaintainsLatest(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(testClock()))

	first, err := s.Put(ctx, "a/b", bytes.NewReader([]byte("one")))
	require.NoError(t, err)
	second, err := s.Put(ctx, "a/b", bytes.NewReader([]byte("two")))
	require.NoError(t, err)
	assert.NotEqual(t, first.VersionID, second.VersionID)

	records := drain(t, s, "a/b")
	require.Len(t, records, 2)
	latestCount := 0
	for _, r := range records {
		if r.IsLatest {
			latestCount++
			assert.Equal(t, second.VersionID, r.VersionID)
		}
	}
	assert.Equal(t, 1, latestCount)

	rdr, err := s.Get(ctx, "a/b", "")
	require.NoError(t, err)
	data, _ := io.ReadAll(rdr)
	assert.Equal(t, "two", string(data))

	rdr, err = s.Get(ctx, "a/b", first.VersionID)
	require.NoError(t, err)
	data, _ = io.ReadAll(rdr)
	assert.Equal(t, "one", string(data))
}

func TestDeleteMarkerLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(testClock()))

	_, err := s.Put(ctx, "k", bytes.NewReader([]byte("content")))
	require.NoError(t, err)
	marker, err := s.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, marker.IsDeleteMarker)
	assert.True(t, marker.IsLatest)

	// current version is now unreadable
	_, err = s.Get(ctx, "k", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotExists)

	// removing the marker restores the content version as latest
	require.NoError(t, s.DeleteVersion(ctx, "k", marker.VersionID))
	records := drain(t, s, "k")
	require.Len(t, records, 1)
	assert.True(t, records[0].IsLatest)
	assert.False(t, records[0].IsDeleteMarker)
}

func TestDeleteVersionUnknown(t *testing.T) {
	s := New()
	err := s.DeleteVersion(context.Background(), "k", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotExists)
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(testClock()), WithPageSize(2))

	for i := 0; i < 5; i++ {
		_, err := s.Put(ctx, "pages/doc", bytes.NewReader([]byte{byte(i)}))
		require.NoError(t, err)
	}

	pages := 0
	var total int
	err := s.ListVersions(ctx, "pages/", func(page []model.VersionRecord, last bool) bool {
		pages++
		total += len(page)
		if last {
			assert.LessOrEqual(t, len(page), 2)
		}
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.Equal(t, 5, total)
}

func TestInjectedFailure(t *testing.T) {
	ctx := context.Background()
	s := New()
	rec, err := s.Put(ctx, "k", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	boom := errors.New("throttled")
	s.FailDeleteVersion("k", rec.VersionID, boom)
	err = s.DeleteVersion(ctx, "k", rec.VersionID)
	assert.ErrorIs(t, err, boom)
}
