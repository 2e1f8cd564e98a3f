package selector

import (
	"testing"
	"time"

	"github.com/s3v-cli/s3v/pkg/timeparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedParser struct {
	at  time.Time
	err error
}

func (p fixedParser) Parse(_ string, _ time.Time) (time.Time, error) {
	return p.at, p.err
}

func TestParseKeywords(t *testing.T) {
	now := time.Now()
	for input, expected := range map[string]Keyword{
		"first":    KeywordOldest,
		"oldest":   KeywordOldest,
		"latest":   KeywordNewest,
		"last":     KeywordNewest,
		"newest":   KeywordNewest,
		"NEWEST":   KeywordNewest,
		"previous": KeywordPrevious,
		"prev":     KeywordPrevious,
		"p":        KeywordPrevious,
	} {
		sel, err := Parse(input, now, nil)
		require.NoError(t, err, input)
		assert.Equal(t, KindKeyword, sel.Kind)
		assert.Equal(t, expected, sel.Keyword, input)
		assert.Equal(t, input, sel.Raw())
	}
}

func TestParseOrdinals(t *testing.T) {
	now := time.Now()
	for input, expected := range map[string]int{
		"0":  0,
		"3":  3,
		"-1": -1,
		"+2": 2,
	} {
		sel, err := Parse(input, now, nil)
		require.NoError(t, err, input)
		assert.Equal(t, KindOrdinal, sel.Kind)
		assert.Equal(t, expected, sel.Ordinal, input)
	}
}

func TestParsePointInTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	at := now.Add(-48 * time.Hour)

	sel, err := Parse("two days ago", now, fixedParser{at: at})
	require.NoError(t, err)
	assert.Equal(t, KindPointInTime, sel.Kind)
	assert.Equal(t, at, sel.At)
}

func TestParsePrecedence(t *testing.T) {
	now := time.Now()

	// keywords win over time expressions
	sel, err := Parse("last", now, fixedParser{at: now})
	require.NoError(t, err)
	assert.Equal(t, KindKeyword, sel.Kind)

	// integers are ordinals, never dates
	sel, err = Parse("-2", now, fixedParser{at: now})
	require.NoError(t, err)
	assert.Equal(t, KindOrdinal, sel.Kind)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("certainly-not-anything", time.Now(), timeparse.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSelector)
}
