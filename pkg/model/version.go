// Package model describes the data model for logical objects
// in a versioned bucket: physical version records, the ordered
// catalog of versions for one key, and the aggregate logical view.
package model

import (
	"fmt"
	"sort"
	"time"

	units "github.com/docker/go-units"
	"github.com/s3v-cli/s3v/pkg/errors"
)

// ErrInternalConsistency indicates that a store invariant did not hold
// (e.g. duplicate version ids for one key). It must never be silently
// recovered from: it means the catalog no longer reflects the bucket.
var ErrInternalConsistency = errors.New("internal consistency violation")

// VersionRecord is one physical version of one key, as reported by the
// bucket's version listing. A record may stand for retrievable content
// or for a delete marker.
type VersionRecord struct {
	Key            string    `json:"key" yaml:"key"`
	VersionID      string    `json:"versionId" yaml:"versionId"`
	LastModified   time.Time `json:"lastModified" yaml:"lastModified"`
	Size           int64     `json:"size,omitempty" yaml:"size,omitempty"`
	ETag           string    `json:"etag,omitempty" yaml:"etag,omitempty"`
	StorageClass   string    `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
	IsLatest       bool      `json:"isLatest" yaml:"isLatest"`
	IsDeleteMarker bool      `json:"isDeleteMarker" yaml:"isDeleteMarker"`
}

// HumanSize yields the record size in human readable form (e.g. "1.5MB")
func (r VersionRecord) HumanSize() string {
	return units.HumanSize(float64(r.Size))
}

func (r VersionRecord) String() string {
	kind := "version"
	if r.IsDeleteMarker {
		kind = "delete marker"
	}
	return fmt.Sprintf("%s %s of %s (%s)", kind, r.VersionID, r.Key, r.LastModified.Format(time.RFC3339))
}

// VersionCatalog is the complete, ordered version history for one key.
//
// Canonical order is ascending LastModified; records with equal timestamps
// keep their relative listing order (stable sort), so ordinal indexing is
// total and reproducible. A catalog is built fresh for every resolution
// and never mutated afterwards.
type VersionCatalog struct {
	key     string
	records []VersionRecord
}

// NewCatalog orders the given records into a catalog for key.
// Delete markers are retained: filtering is the caller's concern.
func NewCatalog(key string, records []VersionRecord) VersionCatalog {
	ordered := make([]VersionRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LastModified.Before(ordered[j].LastModified)
	})
	return VersionCatalog{key: key, records: ordered}
}

// Key of the logical object this catalog describes
func (c VersionCatalog) Key() string {
	return c.key
}

// Len is the total number of records, delete markers included
func (c VersionCatalog) Len() int {
	return len(c.records)
}

// IsEmpty is true when the key has no recorded history at all
func (c VersionCatalog) IsEmpty() bool {
	return len(c.records) == 0
}

// Records returns the records in canonical order. The returned slice is
// shared: callers must not mutate it.
func (c VersionCatalog) Records() []VersionRecord {
	return c.records
}

// At returns the record at ordinal index i. Index 0 is the oldest record,
// negative indices count from the newest (-1 = newest).
func (c VersionCatalog) At(i int) (VersionRecord, bool) {
	n := len(c.records)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return VersionRecord{}, false
	}
	return c.records[i], true
}

// Latest returns the record the store marks as latest. When no record
// carries the latest flag on a non-empty catalog, the newest record in
// canonical order stands in.
func (c VersionCatalog) Latest() (VersionRecord, bool) {
	for i := len(c.records) - 1; i >= 0; i-- {
		if c.records[i].IsLatest {
			return c.records[i], true
		}
	}
	return c.At(-1)
}

// ActiveAt returns the version that was current at time t: the record
// with the greatest LastModified not after t. Ties prefer the record
// later in canonical order, consistently with ordinal indexing.
func (c VersionCatalog) ActiveAt(t time.Time) (VersionRecord, bool) {
	for i := len(c.records) - 1; i >= 0; i-- {
		if !c.records[i].LastModified.After(t) {
			return c.records[i], true
		}
	}
	return VersionRecord{}, false
}

// ByID returns the record carrying the given version id.
// Version ids are unique per key by store contract: more than one match
// means the catalog was built from a corrupt listing.
func (c VersionCatalog) ByID(id string) (VersionRecord, bool, error) {
	var (
		match VersionRecord
		seen  int
	)
	for _, r := range c.records {
		if r.VersionID == id {
			match = r
			seen++
		}
	}
	switch seen {
	case 0:
		return VersionRecord{}, false, nil
	case 1:
		return match, true, nil
	default:
		return VersionRecord{}, false,
			errors.Newf("%d records share version id %q for key %q", seen, id, c.key).Wrap(ErrInternalConsistency)
	}
}

// VersionCount is the number of content versions, delete markers excluded
func (c VersionCatalog) VersionCount() int {
	n := 0
	for _, r := range c.records {
		if !r.IsDeleteMarker {
			n++
		}
	}
	return n
}

// IsDeleted is true when the latest record is a delete marker
func (c VersionCatalog) IsDeleted() bool {
	latest, ok := c.Latest()
	return ok && latest.IsDeleteMarker
}

// Summarize aggregates the catalog into its logical object view
func (c VersionCatalog) Summarize() LogicalObject {
	obj := LogicalObject{
		Key:          c.key,
		VersionCount: c.VersionCount(),
		IsDeleted:    c.IsDeleted(),
	}
	if latest, ok := c.Latest(); ok {
		obj.Current = &latest
	}
	return obj
}

// LogicalObject is the user facing aggregate for one key: the current
// version if any, how many content versions exist, and whether the key
// is soft-deleted. A key whose history holds only delete markers reports
// VersionCount 0 with IsDeleted true: a valid terminal state.
type LogicalObject struct {
	Key          string         `json:"key" yaml:"key"`
	Current      *VersionRecord `json:"current,omitempty" yaml:"current,omitempty"`
	VersionCount int            `json:"versionCount" yaml:"versionCount"`
	IsDeleted    bool           `json:"isDeleted" yaml:"isDeleted"`
}
