package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/selector"
	"github.com/s3v-cli/s3v/pkg/timeparse"
)

const defaultMaxParallel = 10

type (
	// Option modifies the behavior of the operations
	Option func(*options)

	options struct {
		l           *zap.Logger
		maxParallel int
		timeParser  timeparse.Parser
		now         func() time.Time
	}
)

// WithLogger sets a logger on the operation
func WithLogger(zlg *zap.Logger) Option {
	return func(o *options) {
		if zlg != nil {
			o.l = zlg
		}
	}
}

// WithMaxParallel bounds the concurrency of aggregate operations (purge)
func WithMaxParallel(parallel int) Option {
	return func(o *options) {
		if parallel > 0 {
			o.maxParallel = parallel
		}
	}
}

// WithTimeParser overrides the time expression parser used by selectors
func WithTimeParser(p timeparse.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.timeParser = p
		}
	}
}

// WithNow overrides the reference clock used by selectors
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func defaultOptions(opts []Option) *options {
	o := &options{
		l:           zap.NewNop(),
		maxParallel: defaultMaxParallel,
		timeParser:  timeparse.New(),
		now:         time.Now,
	}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

func (o *options) resolver() *selector.Resolver {
	return selector.New(
		selector.WithTimeParser(o.timeParser),
		selector.WithNow(o.now),
	)
}
