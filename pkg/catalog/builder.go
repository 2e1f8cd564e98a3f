// Package catalog builds ordered version catalogs from the raw,
// unordered version listing a store exposes.
//
// A catalog is always built fresh and fully drained: every listing page
// is merged before anything downstream sees the history, since ordinal
// and point-in-time selection need the complete set.
package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// Option modifies the builder behavior
type Option func(*Builder)

// WithLogger sets a logger on the builder
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.l = l
		}
	}
}

// Builder drains version listings into per-key catalogs
type Builder struct {
	store storage.VersionedStore
	l     *zap.Logger
}

// New builds a catalog builder over a store
func New(store storage.VersionedStore, opts ...Option) *Builder {
	b := &Builder{
		store: store,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(b)
	}
	return b
}

// Key builds the catalog for one exact key. A key that never existed
// yields an empty catalog, not an error.
func (b *Builder) Key(ctx context.Context, key string) (model.VersionCatalog, error) {
	perKey, err := b.drain(ctx, key)
	if err != nil {
		return model.VersionCatalog{}, err
	}
	// the listing is by prefix: unrelated keys sharing the prefix are dropped
	return model.NewCatalog(key, perKey[key]), nil
}

// Prefix builds one catalog per distinct key observed under the prefix,
// sorted by key.
func (b *Builder) Prefix(ctx context.Context, prefix string) ([]model.VersionCatalog, error) {
	perKey, err := b.drain(ctx, prefix)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(perKey))
	for key := range perKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	catalogs := make([]model.VersionCatalog, 0, len(keys))
	for _, key := range keys {
		catalogs = append(catalogs, model.NewCatalog(key, perKey[key]))
	}
	return catalogs, nil
}

func (b *Builder) drain(ctx context.Context, keyOrPrefix string) (map[string][]model.VersionRecord, error) {
	perKey := map[string][]model.VersionRecord{}
	records := 0
	err := b.store.ListVersions(ctx, keyOrPrefix, func(page []model.VersionRecord, _ bool) bool {
		for _, rec := range page {
			perKey[rec.Key] = append(perKey[rec.Key], rec)
			records++
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	b.l.Debug("drained version listing",
		zap.String("prefix", keyOrPrefix),
		zap.Int("keys", len(perKey)),
		zap.Int("records", records),
	)
	return perKey, nil
}
