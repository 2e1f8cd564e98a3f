package core

import (
	"github.com/s3v-cli/s3v/pkg/errors"
)

var (
	// ErrObjectDeleted indicates that the selector resolved to a delete
	// marker where retrievable content was required
	ErrObjectDeleted = errors.New("object is deleted")

	// ErrRecoverDeleteMarker indicates a recover targeting a delete
	// marker: there is no content to re-upload, undelete is the
	// operation for removing a deletion
	ErrRecoverDeleteMarker = errors.New("cannot recover from a delete marker")

	// ErrPartialFailure indicates that an aggregate operation completed
	// with some failures; the result carries per-item detail
	ErrPartialFailure = errors.New("operation partially failed")
)
