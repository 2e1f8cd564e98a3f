package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbsolute(t *testing.T) {
	p := New()
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	ts, err := p.Parse("2024-03-01 12:00:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), ts)

	ts, err = p.Parse("2024-03-01T12:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), ts)
}

func TestParseRelative(t *testing.T) {
	p := New()
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	ts, err := p.Parse("yesterday", now)
	require.NoError(t, err)
	assert.True(t, ts.Before(now))
	assert.WithinDuration(t, now.AddDate(0, 0, -1), ts, 24*time.Hour)
}

func TestParseFailure(t *testing.T) {
	p := New()
	_, err := p.Parse("certainly not a date", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseable)
}
