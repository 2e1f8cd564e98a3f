package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// Delete soft-deletes a key by writing a delete marker. No prior
// version is removed: the object merely reads as deleted until the
// marker is removed again (see Undelete).
func Delete(ctx context.Context, store storage.VersionedStore, key string, opts ...Option) (model.VersionRecord, error) {
	o := defaultOptions(opts)
	o.l.Info("writing delete marker",
		zap.String("key", key),
		zap.Stringer("store", store),
	)
	return store.Delete(ctx, key)
}

// DeleteVersion resolves verspec and permanently removes exactly that
// version or delete marker. Unlike Delete this is unrecoverable.
func DeleteVersion(ctx context.Context, store storage.VersionedStore, key, verspec string, opts ...Option) (model.VersionRecord, error) {
	o := defaultOptions(opts)

	rec, err := resolveOne(ctx, store, key, verspec, o)
	if err != nil {
		return model.VersionRecord{}, err
	}

	o.l.Info("hard-deleting one version",
		zap.String("key", key),
		zap.String("selector", verspec),
		zap.String("version_id", rec.VersionID),
		zap.Stringer("store", store),
	)
	if err := store.DeleteVersion(ctx, key, rec.VersionID); err != nil {
		return model.VersionRecord{}, err
	}
	return rec, nil
}
