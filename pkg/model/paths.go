package model

import (
	"fmt"
	"strings"

	"github.com/s3v-cli/s3v/pkg/errors"
)

// Scheme marks a remote object path
const Scheme = "s3://"

// ErrInvalidPath indicates an object path without a bucket
var ErrInvalidPath = errors.New("invalid object path")

// ObjectPath locates a key, or a key prefix, inside one bucket.
type ObjectPath struct {
	Bucket string
	Key    string
}

// ParseObjectPath parses "s3://bucket/key", "bucket/key" or a bare
// bucket name. The first path segment is the bucket, everything after
// the first slash is the key or prefix. A trailing slash on a bare
// bucket name is dropped.
func ParseObjectPath(pth string) (ObjectPath, error) {
	trimmed := strings.TrimPrefix(pth, Scheme)
	if trimmed == "" {
		return ObjectPath{}, errors.Newf("no bucket in %q", pth).Wrap(ErrInvalidPath)
	}
	if bucket, key, found := strings.Cut(trimmed, "/"); found {
		if bucket == "" {
			return ObjectPath{}, errors.Newf("no bucket in %q", pth).Wrap(ErrInvalidPath)
		}
		return ObjectPath{Bucket: bucket, Key: key}, nil
	}
	return ObjectPath{Bucket: strings.TrimSuffix(trimmed, "/")}, nil
}

// IsObjectPath tells whether the argument refers to a remote object
// rather than a local file
func IsObjectPath(pth string) bool {
	return strings.HasPrefix(pth, Scheme)
}

func (p ObjectPath) String() string {
	if p.Key == "" {
		return Scheme + p.Bucket
	}
	return fmt.Sprintf("%s%s/%s", Scheme, p.Bucket, p.Key)
}
