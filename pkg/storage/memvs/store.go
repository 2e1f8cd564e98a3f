// Package memvs provides an in-memory versioned store.
//
// It maintains the same per-key invariants as a versioned S3 bucket
// (exactly one latest record per key, delete markers stacked on top of
// content versions) and is the store used by tests.
package memvs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/s3v-cli/s3v/internal/rand"
	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
	"github.com/s3v-cli/s3v/pkg/storage/status"
)

// Option configures the in-memory store
type Option func(*Store)

// WithClock injects the clock assigning LastModified timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithPageSize sets how many records a listing page holds
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// Store is an in-memory versioned object store
type Store struct {
	mu       sync.Mutex
	perKey   map[string][]model.VersionRecord // listing order per key
	content  map[string][]byte                // key@versionID -> bytes
	failures map[string]error                 // key@versionID -> injected deletion failure
	seq      int
	clock    func() time.Time
	pageSize int
}

// New builds an empty in-memory store
func New(opts ...Option) *Store {
	s := &Store{
		perKey:   map[string][]model.VersionRecord{},
		content:  map[string][]byte{},
		failures: map[string]error{},
		clock:    func() time.Time { return time.Now().UTC() },
		pageSize: 1000,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

func (s *Store) String() string {
	return "memvs"
}

func contentKey(key, versionID string) string {
	return key + "@" + versionID
}

func (s *Store) nextVersionID() string {
	// a monotonic prefix keeps listing order deterministic on timestamp ties
	s.seq++
	return fmt.Sprintf("mv-%06d-%s", s.seq, rand.LetterString(8))
}

func (s *Store) ListVersions(_ context.Context, keyOrPrefix string, fn storage.PageFunc) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.perKey))
	for key := range s.perKey {
		if key == keyOrPrefix || hasPrefix(key, keyOrPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	var all []model.VersionRecord
	for _, key := range keys {
		all = append(all, s.perKey[key]...)
	}
	s.mu.Unlock()

	if len(all) == 0 {
		fn(nil, true)
		return nil
	}
	for start := 0; start < len(all); start += s.pageSize {
		end := start + s.pageSize
		if end > len(all) {
			end = len(all)
		}
		if !fn(all[start:end], end == len(all)) {
			return nil
		}
	}
	return nil
}

func (s *Store) Get(_ context.Context, key, versionID string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.perKey[key]
	var target *model.VersionRecord
	if versionID == "" {
		for i := range records {
			if records[i].IsLatest {
				target = &records[i]
				break
			}
		}
	} else {
		for i := range records {
			if records[i].VersionID == versionID {
				target = &records[i]
				break
			}
		}
	}
	if target == nil {
		return nil, errors.Newf("key %q version %q", key, versionID).Wrap(status.ErrNotExists)
	}
	if target.IsDeleteMarker {
		return nil, errors.Newf("key %q is a delete marker at version %q", key, target.VersionID).Wrap(status.ErrNotExists)
	}
	return io.NopCloser(bytes.NewReader(s.content[contentKey(key, target.VersionID)])), nil
}

func (s *Store) Put(_ context.Context, key string, rdr io.Reader) (model.VersionRecord, error) {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return model.VersionRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := model.VersionRecord{
		Key:          key,
		VersionID:    s.nextVersionID(),
		LastModified: s.clock().UTC(),
		Size:         int64(len(data)),
		IsLatest:     true,
	}
	s.clearLatest(key)
	s.perKey[key] = append(s.perKey[key], rec)
	s.content[contentKey(key, rec.VersionID)] = data
	return rec, nil
}

func (s *Store) Delete(_ context.Context, key string) (model.VersionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker := model.VersionRecord{
		Key:            key,
		VersionID:      s.nextVersionID(),
		LastModified:   s.clock().UTC(),
		IsLatest:       true,
		IsDeleteMarker: true,
	}
	s.clearLatest(key)
	s.perKey[key] = append(s.perKey[key], marker)
	return marker, nil
}

func (s *Store) DeleteVersion(_ context.Context, key, versionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, injected := s.failures[contentKey(key, versionID)]; injected {
		return err
	}

	records := s.perKey[key]
	idx := -1
	for i := range records {
		if records[i].VersionID == versionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Newf("key %q version %q", key, versionID).Wrap(status.ErrNotExists)
	}

	wasLatest := records[idx].IsLatest
	s.perKey[key] = append(records[:idx:idx], records[idx+1:]...)
	delete(s.content, contentKey(key, versionID))

	if len(s.perKey[key]) == 0 {
		delete(s.perKey, key)
		return nil
	}
	if wasLatest {
		s.promoteLatest(key)
	}
	return nil
}

// Buckets is a single-bucket store
func (s *Store) Buckets(_ context.Context) ([]storage.BucketInfo, error) {
	return []storage.BucketInfo{{Name: "memvs", CreatedAt: time.Time{}}}, nil
}

// FailDeleteVersion injects a failure for one (key, versionID) deletion,
// to exercise partial-failure reporting.
func (s *Store) FailDeleteVersion(key, versionID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[contentKey(key, versionID)] = err
}

func (s *Store) clearLatest(key string) {
	records := s.perKey[key]
	for i := range records {
		records[i].IsLatest = false
	}
}

// promoteLatest flags the most recent remaining record, the way the
// store-side invariant would settle after a versioned delete.
func (s *Store) promoteLatest(key string) {
	records := s.perKey[key]
	latest := 0
	for i := 1; i < len(records); i++ {
		if !records[i].LastModified.Before(records[latest].LastModified) {
			latest = i
		}
	}
	records[latest].IsLatest = true
}

func hasPrefix(key, prefix string) bool {
	return prefix == "" || len(key) >= len(prefix) && key[:len(prefix)] == prefix
}
