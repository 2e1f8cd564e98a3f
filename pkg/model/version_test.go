package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func rec(id string, offset time.Duration, latest, marker bool) VersionRecord {
	return VersionRecord{
		Key:            "data/report.csv",
		VersionID:      id,
		LastModified:   t0.Add(offset),
		Size:           100,
		IsLatest:       latest,
		IsDeleteMarker: marker,
	}
}

func testCatalog() VersionCatalog {
	// records deliberately passed out of order
	return NewCatalog("data/report.csv", []VersionRecord{
		rec("v3", 2*time.Hour, true, false),
		rec("v1", 0, false, false),
		rec("v2", time.Hour, false, false),
	})
}

func TestCatalogCanonicalOrder(t *testing.T) {
	c := testCatalog()
	require.Equal(t, 3, c.Len())
	ids := make([]string, 0, c.Len())
	for _, r := range c.Records() {
		ids = append(ids, r.VersionID)
	}
	assert.Equal(t, []string{"v1", "v2", "v3"}, ids)
}

func TestCatalogOrdinals(t *testing.T) {
	c := testCatalog()

	oldest, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "v1", oldest.VersionID)

	fromEnd, ok := c.At(-3)
	require.True(t, ok)
	assert.Equal(t, oldest, fromEnd)

	newest, ok := c.At(-1)
	require.True(t, ok)
	assert.Equal(t, "v3", newest.VersionID)

	last, ok := c.At(2)
	require.True(t, ok)
	assert.Equal(t, newest, last)

	_, ok = c.At(3)
	assert.False(t, ok)
	_, ok = c.At(-4)
	assert.False(t, ok)
}

func TestCatalogStableTieBreak(t *testing.T) {
	// equal timestamps keep listing order
	c := NewCatalog("k", []VersionRecord{
		rec("a", time.Minute, false, false),
		rec("b", time.Minute, true, false),
	})
	first, _ := c.At(0)
	second, _ := c.At(1)
	assert.Equal(t, "a", first.VersionID)
	assert.Equal(t, "b", second.VersionID)

	// ActiveAt prefers the later record on a tie
	active, ok := c.ActiveAt(t0.Add(time.Minute))
	require.True(t, ok)
	assert.Equal(t, "b", active.VersionID)
}

func TestCatalogLatest(t *testing.T) {
	c := testCatalog()
	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, "v3", latest.VersionID)

	// no record flagged latest: newest by canonical order stands in
	c = NewCatalog("k", []VersionRecord{
		rec("v1", 0, false, false),
		rec("v2", time.Hour, false, false),
	})
	latest, ok = c.Latest()
	require.True(t, ok)
	assert.Equal(t, "v2", latest.VersionID)

	_, ok = NewCatalog("k", nil).Latest()
	assert.False(t, ok)
}

func TestCatalogActiveAt(t *testing.T) {
	c := testCatalog()

	active, ok := c.ActiveAt(t0.Add(90 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, "v2", active.VersionID)

	// boundary is inclusive
	active, ok = c.ActiveAt(t0.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, "v2", active.VersionID)

	_, ok = c.ActiveAt(t0.Add(-time.Minute))
	assert.False(t, ok)
}

func TestCatalogByID(t *testing.T) {
	c := testCatalog()

	r, found, err := c.ByID("v2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v2", r.VersionID)

	_, found, err = c.ByID("nope")
	require.NoError(t, err)
	assert.False(t, found)

	dup := NewCatalog("k", []VersionRecord{
		rec("same", 0, false, false),
		rec("same", time.Hour, true, false),
	})
	_, _, err = dup.ByID("same")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalConsistency)
}

func TestSummarize(t *testing.T) {
	c := testCatalog()
	obj := c.Summarize()
	assert.Equal(t, 3, obj.VersionCount)
	assert.False(t, obj.IsDeleted)
	require.NotNil(t, obj.Current)
	assert.Equal(t, "v3", obj.Current.VersionID)

	// deleted object: latest record is a delete marker
	deleted := NewCatalog("k", []VersionRecord{
		rec("v1", 0, false, false),
		rec("dm1", time.Hour, true, true),
	})
	obj = deleted.Summarize()
	assert.Equal(t, 1, obj.VersionCount)
	assert.True(t, obj.IsDeleted)

	// markers-only history: zero content versions, still deleted
	markersOnly := NewCatalog("k", []VersionRecord{
		rec("dm1", 0, false, true),
		rec("dm2", time.Hour, true, true),
	})
	obj = markersOnly.Summarize()
	assert.Equal(t, 0, obj.VersionCount)
	assert.True(t, obj.IsDeleted)
	require.NotNil(t, obj.Current)
	assert.Equal(t, "dm2", obj.Current.VersionID)

	// empty history
	obj = NewCatalog("k", nil).Summarize()
	assert.Equal(t, 0, obj.VersionCount)
	assert.False(t, obj.IsDeleted)
	assert.Nil(t, obj.Current)
}
