// Package selector implements the version resolution engine: it parses
// a user supplied version selector (explicit version id, keyword,
// ordinal index or time expression) and resolves it against a version
// catalog to exactly one record.
package selector

import (
	"strconv"
	"strings"
	"time"

	"github.com/s3v-cli/s3v/pkg/timeparse"
)

// Kind discriminates the selector variants
type Kind int

const (
	// KindExplicitID selects a record by its exact version id
	KindExplicitID Kind = iota

	// KindKeyword selects a record by position keyword (oldest, newest, previous)
	KindKeyword

	// KindOrdinal selects a record by ordinal index, 0 being the oldest
	// and negative indices counting from the newest
	KindOrdinal

	// KindPointInTime selects the record that was current at a given time
	KindPointInTime
)

// Keyword is a recognized position keyword
type Keyword int

const (
	// KeywordOldest selects the oldest record
	KeywordOldest Keyword = iota

	// KeywordNewest selects the record the store marks as latest
	KeywordNewest

	// KeywordPrevious selects the second-to-newest record
	KeywordPrevious
)

var keywords = map[string]Keyword{
	"first":    KeywordOldest,
	"oldest":   KeywordOldest,
	"latest":   KeywordNewest,
	"last":     KeywordNewest,
	"newest":   KeywordNewest,
	"previous": KeywordPrevious,
	"prev":     KeywordPrevious,
	"p":        KeywordPrevious,
}

// Selector is the parsed user intent, a tagged variant over the four
// selector forms. Exactly one of the payload fields is meaningful,
// according to Kind.
type Selector struct {
	Kind    Kind
	ID      string
	Keyword Keyword
	Ordinal int
	At      time.Time

	raw string
}

// Raw returns the selector string as the user supplied it
func (s Selector) Raw() string {
	return s.raw
}

// ExplicitID builds a selector for an exact version id
func ExplicitID(id string) Selector {
	return Selector{Kind: KindExplicitID, ID: id, raw: id}
}

// Parse interprets a selector string as a keyword, an ordinal index or a
// point in time, in that precedence order. Explicit version ids are not
// recognized here: matching against the version ids a store actually
// issued needs the catalog, so Resolver.Resolve tries that first, before
// falling back to this chain.
func Parse(verspec string, now time.Time, timeParser timeparse.Parser) (Selector, error) {
	if kw, ok := keywords[strings.ToLower(verspec)]; ok {
		return Selector{Kind: KindKeyword, Keyword: kw, raw: verspec}, nil
	}

	if n, err := strconv.Atoi(verspec); err == nil {
		return Selector{Kind: KindOrdinal, Ordinal: n, raw: verspec}, nil
	}

	if timeParser != nil {
		if at, err := timeParser.Parse(verspec, now); err == nil {
			return Selector{Kind: KindPointInTime, At: at, raw: verspec}, nil
		}
	}

	return Selector{}, invalidSelector(verspec)
}
