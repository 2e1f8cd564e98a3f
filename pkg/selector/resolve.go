package selector

import (
	"time"

	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/timeparse"
)

// Option modifies the behavior of the resolver
type Option func(*Resolver)

// WithTimeParser overrides the time expression parser
func WithTimeParser(p timeparse.Parser) Option {
	return func(r *Resolver) {
		if p != nil {
			r.timeParser = p
		}
	}
}

// WithNow overrides the reference clock. Relative time expressions
// ("yesterday") are evaluated against this clock.
func WithNow(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver resolves version selectors against version catalogs.
type Resolver struct {
	timeParser timeparse.Parser
	now        func() time.Time
}

// New builds a resolver with the default time parser and clock
func New(opts ...Option) *Resolver {
	r := &Resolver{
		timeParser: timeparse.New(),
		now:        time.Now,
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Resolve parses verspec and resolves it against the catalog.
//
// The parse attempts run in fixed precedence order: a version id the
// store actually issued for this key wins over everything, then
// keywords, then ordinal indices, then time expressions. A string no
// rule accepts yields ErrInvalidSelector.
func (r *Resolver) Resolve(c model.VersionCatalog, verspec string) (model.VersionRecord, error) {
	if rec, found, err := c.ByID(verspec); err != nil {
		return model.VersionRecord{}, err
	} else if found {
		return rec, nil
	}

	sel, err := Parse(verspec, r.now(), r.timeParser)
	if err != nil {
		return model.VersionRecord{}, err
	}
	return r.ResolveSelector(c, sel)
}

// ResolveSelector resolves an already parsed selector against the
// catalog. Every variant yields at most one record; failures carry the
// reason and the valid range where one exists.
func (r *Resolver) ResolveSelector(c model.VersionCatalog, sel Selector) (model.VersionRecord, error) {
	switch sel.Kind {
	case KindExplicitID:
		rec, found, err := c.ByID(sel.ID)
		if err != nil {
			return model.VersionRecord{}, err
		}
		if !found {
			return model.VersionRecord{}, notFoundID(c.Key(), sel.ID)
		}
		return rec, nil

	case KindKeyword:
		return r.resolveKeyword(c, sel.Keyword)

	case KindOrdinal:
		rec, ok := c.At(sel.Ordinal)
		if !ok {
			if c.IsEmpty() {
				return model.VersionRecord{}, notFoundEmpty(c.Key())
			}
			return model.VersionRecord{}, notFoundOrdinal(c.Key(), sel.Ordinal, c.Len())
		}
		return rec, nil

	case KindPointInTime:
		if c.IsEmpty() {
			return model.VersionRecord{}, notFoundEmpty(c.Key())
		}
		rec, ok := c.ActiveAt(sel.At)
		if !ok {
			earliest, _ := c.At(0)
			return model.VersionRecord{}, notFoundBefore(c.Key(), sel.At, earliest.LastModified)
		}
		return rec, nil

	default:
		return model.VersionRecord{}, invalidSelector(sel.raw)
	}
}

func (r *Resolver) resolveKeyword(c model.VersionCatalog, kw Keyword) (model.VersionRecord, error) {
	switch kw {
	case KeywordOldest:
		rec, ok := c.At(0)
		if !ok {
			return model.VersionRecord{}, notFoundEmpty(c.Key())
		}
		return rec, nil

	case KeywordNewest:
		rec, ok := c.Latest()
		if !ok {
			return model.VersionRecord{}, notFoundEmpty(c.Key())
		}
		return rec, nil

	default: // KeywordPrevious
		rec, ok := c.At(-2)
		if !ok {
			return model.VersionRecord{}, notFoundPrevious(c.Key(), c.Len())
		}
		return rec, nil
	}
}
