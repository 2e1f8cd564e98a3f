// Package timeparse turns free-text time expressions into absolute
// timestamps. It accepts both explicit formats ("2024-03-01 12:00",
// RFC3339, ...) and relative natural-language expressions
// ("yesterday", "2 hours ago"), evaluated against a reference time.
package timeparse

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/s3v-cli/s3v/pkg/errors"
)

// ErrUnparseable indicates that the text matches no known time expression
var ErrUnparseable = errors.New("unrecognized time expression")

// Parser resolves time expressions against a reference "now".
type Parser interface {
	Parse(text string, now time.Time) (time.Time, error)
}

// New builds the default parser: explicit formats first,
// natural-language expressions second.
func New() Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &chainParser{w: w}
}

type chainParser struct {
	w *when.Parser
}

func (p *chainParser) Parse(text string, now time.Time) (time.Time, error) {
	// naive timestamps are taken as UTC, matching store timestamps
	if ts, err := dateparse.ParseIn(text, time.UTC); err == nil {
		return ts.UTC(), nil
	}

	r, err := p.w.Parse(text, now)
	if err == nil && r != nil {
		return r.Time.UTC(), nil
	}
	return time.Time{}, errors.Newf("cannot interpret %q as a point in time", text).Wrap(ErrUnparseable)
}
