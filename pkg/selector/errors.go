package selector

import (
	"time"

	"github.com/s3v-cli/s3v/pkg/errors"
)

var (
	// ErrInvalidSelector indicates a selector string no rule could parse
	ErrInvalidSelector = errors.New("invalid version selector")

	// ErrNotFound indicates a well-formed selector with no matching record.
	// The wrapping error states why: index out of range, timestamp before
	// the earliest version, unknown version id, or an empty history.
	ErrNotFound = errors.New("no matching version")
)

func invalidSelector(verspec string) error {
	return errors.Newf("%q is not a version id, keyword, index or time expression", verspec).
		Wrap(ErrInvalidSelector)
}

func notFoundEmpty(key string) error {
	return errors.Newf("no versions recorded for key %q", key).Wrap(ErrNotFound)
}

func notFoundOrdinal(key string, n, size int) error {
	return errors.Newf("version index %d out of range for key %q: valid range is [%d, %d]",
		n, key, -size, size-1).Wrap(ErrNotFound)
}

func notFoundPrevious(key string, size int) error {
	return errors.Newf("no previous version for key %q: need at least 2 versions, have %d",
		key, size).Wrap(ErrNotFound)
}

func notFoundBefore(key string, at, earliest time.Time) error {
	return errors.Newf("no version of key %q existed yet at %s: earliest is %s",
		key, at.Format(time.RFC3339), earliest.Format(time.RFC3339)).Wrap(ErrNotFound)
}

func notFoundID(key, id string) error {
	return errors.Newf("version id %q not found for key %q", id, key).Wrap(ErrNotFound)
}
