// Package core composes catalogs, selector resolution and the storage
// boundary into the user facing operations: fetch, list, delete,
// undelete, purge and recover.
package core

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/catalog"
	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// Fetch resolves verspec against the key's history and returns the
// content of the resolved version. An empty verspec means the newest
// version. Resolving to a delete marker fails with ErrObjectDeleted:
// callers asked for content, and a marker has none.
func Fetch(ctx context.Context, store storage.VersionedStore, key, verspec string, opts ...Option) (io.ReadCloser, model.VersionRecord, error) {
	o := defaultOptions(opts)

	rec, err := resolveOne(ctx, store, key, verspec, o)
	if err != nil {
		return nil, model.VersionRecord{}, err
	}
	if rec.IsDeleteMarker {
		return nil, rec, errors.Newf("%q of key %q is a delete marker: object was deleted as of %s",
			verspec, key, rec.LastModified.Format(time.RFC3339)).Wrap(ErrObjectDeleted)
	}

	o.l.Debug("fetching object version",
		zap.String("key", key),
		zap.String("version_id", rec.VersionID),
		zap.Stringer("store", store),
	)
	rdr, err := store.Get(ctx, key, rec.VersionID)
	if err != nil {
		return nil, rec, err
	}
	return rdr, rec, nil
}

// resolveOne rebuilds the catalog for key and resolves verspec against
// it. The catalog is never cached: the store may mutate between calls
// and a stale catalog would resolve against history that no longer
// matches reality.
func resolveOne(ctx context.Context, store storage.VersionedStore, key, verspec string, o *options) (model.VersionRecord, error) {
	c, err := catalog.New(store, catalog.WithLogger(o.l)).Key(ctx, key)
	if err != nil {
		return model.VersionRecord{}, err
	}
	if verspec == "" {
		verspec = "latest"
	}
	return o.resolver().Resolve(c, verspec)
}
