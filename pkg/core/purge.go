package core

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/s3v-cli/s3v/pkg/catalog"
	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// PurgeFailure is one version that could not be deleted
type PurgeFailure struct {
	Record model.VersionRecord
	Err    error
}

// PurgeResult reports how far a purge got. A purge makes maximal
// progress: one failed deletion never aborts the remaining ones, so the
// result may carry both successes and failures.
type PurgeResult struct {
	Key       string
	Requested int
	Deleted   int
	Failures  []PurgeFailure
}

// Err aggregates the per-item failures, nil when everything was deleted
func (r *PurgeResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	err := errors.Newf("purge of %q deleted %d of %d versions", r.Key, r.Deleted, r.Requested).
		Wrap(ErrPartialFailure)
	agg := error(err)
	for _, f := range r.Failures {
		agg = multierr.Append(agg, f.Err)
	}
	return agg
}

// Purge permanently removes every version and delete marker of one key.
// Deletions run with bounded parallelism: each targets a distinct,
// already-known (key, versionId) pair, so failures are independent and
// collected rather than short-circuited. Cancellation stops scheduling
// new deletions but the result still reports whatever succeeded so far.
func Purge(ctx context.Context, store storage.VersionedStore, key string, opts ...Option) (*PurgeResult, error) {
	o := defaultOptions(opts)

	c, err := catalog.New(store, catalog.WithLogger(o.l)).Key(ctx, key)
	if err != nil {
		return nil, err
	}

	result := &PurgeResult{Key: key, Requested: c.Len()}
	if c.IsEmpty() {
		return result, nil
	}

	o.l.Info("purging all versions",
		zap.String("key", key),
		zap.Int("versions", c.Len()),
		zap.Int("max_parallel", o.maxParallel),
		zap.Stringer("store", store),
	)

	var mu sync.Mutex
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(o.maxParallel)

	for _, toPin := range c.Records() {
		rec := toPin

		select {
		case <-gctx.Done():
		default:
			group.Go(func() error {
				err := store.DeleteVersion(gctx, rec.Key, rec.VersionID)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					o.l.Warn("failed to delete version",
						zap.String("key", rec.Key),
						zap.String("version_id", rec.VersionID),
						zap.Error(err),
					)
					result.Failures = append(result.Failures, PurgeFailure{Record: rec, Err: err})
					return nil // keep going: failures are collected, not fatal
				}
				result.Deleted++
				return nil
			})
		}
	}

	// the closures never return an error: failures land in the result
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		// cancelled: the result still reports whatever was deleted
		return result, err
	}
	return result, result.Err()
}
