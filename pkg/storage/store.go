// Package storage defines the boundary to a versioned object store.
//
// Implementations are assumed to be fairly simple adapters over a
// bucket-like backend with native versioning (S3 and compatibles).
// Everything above this boundary reasons about model.VersionRecord.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/s3v-cli/s3v/pkg/model"
)

// PageFunc consumes one page of version records. Returning false stops
// the listing. lastPage is true on the final page.
type PageFunc func(records []model.VersionRecord, lastPage bool) bool

// VersionedStore is the contract the core needs from a versioned bucket.
type VersionedStore interface {
	fmt.Stringer

	// ListVersions streams every version record (content versions and
	// delete markers) under keyOrPrefix, page by page.
	ListVersions(ctx context.Context, keyOrPrefix string, fn PageFunc) error

	// Get fetches the content of one version. An empty versionID means
	// the current version.
	Get(ctx context.Context, key, versionID string) (io.ReadCloser, error)

	// Put uploads content as a brand-new version of key, which becomes
	// the latest.
	Put(ctx context.Context, key string, rdr io.Reader) (model.VersionRecord, error)

	// Delete writes a delete marker for key. Prior versions remain.
	Delete(ctx context.Context, key string) (model.VersionRecord, error)

	// DeleteVersion permanently removes one specific version or delete
	// marker. Unrecoverable.
	DeleteVersion(ctx context.Context, key, versionID string) error
}

// BucketInfo describes one bucket of the backing store
type BucketInfo struct {
	Name      string
	CreatedAt time.Time
}

// BucketLister is implemented by stores that can enumerate buckets
type BucketLister interface {
	Buckets(ctx context.Context) ([]BucketInfo, error)
}
