package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/catalog"
	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/selector"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// UndeleteResult describes what an undelete did.
type UndeleteResult struct {
	// NoOp is true when the object was already live
	NoOp bool

	// Removed is the delete marker that was taken away, nil on a no-op
	Removed *model.VersionRecord

	// Restored is the content version that became latest again; nil when
	// the history held nothing but delete markers
	Restored *model.VersionRecord
}

// Undelete restores a soft-deleted key by permanently removing the
// delete marker currently flagged latest. When the current record is
// not a delete marker the object is already live and the call is a
// no-op, not an error.
func Undelete(ctx context.Context, store storage.VersionedStore, key string, opts ...Option) (*UndeleteResult, error) {
	o := defaultOptions(opts)

	c, err := catalog.New(store, catalog.WithLogger(o.l)).Key(ctx, key)
	if err != nil {
		return nil, err
	}
	current, ok := c.Latest()
	if !ok {
		return nil, errors.Newf("no versions recorded for key %q", key).Wrap(selector.ErrNotFound)
	}
	if !current.IsDeleteMarker {
		o.l.Info("object is already live, nothing to undelete",
			zap.String("key", key),
		)
		return &UndeleteResult{NoOp: true}, nil
	}

	o.l.Info("removing delete marker",
		zap.String("key", key),
		zap.String("version_id", current.VersionID),
		zap.Stringer("store", store),
	)
	if err := store.DeleteVersion(ctx, key, current.VersionID); err != nil {
		return nil, err
	}

	result := &UndeleteResult{Removed: &current}
	// the next-latest record by canonical order becomes current
	if restored, ok := c.At(-2); ok && !restored.IsDeleteMarker {
		result.Restored = &restored
	}
	return result, nil
}
