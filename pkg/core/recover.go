package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// RecoverResult reports a recovery: the historical version the content
// came from, and the brand-new version it became.
type RecoverResult struct {
	Source     model.VersionRecord
	NewVersion model.VersionRecord
}

// Recover re-uploads the content of the resolved version as a new
// version of the same key, which becomes the new latest. Recovery is
// additive: the historical record it reads from is left untouched.
//
// A selector resolving to a delete marker is rejected: a marker has no
// content to recover, and removing a deletion is Undelete's job.
func Recover(ctx context.Context, store storage.VersionedStore, key, verspec string, opts ...Option) (*RecoverResult, error) {
	o := defaultOptions(opts)

	rec, err := resolveOne(ctx, store, key, verspec, o)
	if err != nil {
		return nil, err
	}
	if rec.IsDeleteMarker {
		return nil, errors.Newf("%q of key %q resolves to delete marker %s: use undelete instead",
			verspec, key, rec.VersionID).Wrap(ErrRecoverDeleteMarker)
	}

	o.l.Info("recovering version as new latest",
		zap.String("key", key),
		zap.String("selector", verspec),
		zap.String("source_version_id", rec.VersionID),
		zap.Stringer("store", store),
	)

	rdr, err := store.Get(ctx, key, rec.VersionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rdr.Close()
	}()

	newRec, err := store.Put(ctx, key, rdr)
	if err != nil {
		return nil, err
	}
	return &RecoverResult{Source: rec, NewVersion: newRec}, nil
}
