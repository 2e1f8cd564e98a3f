package core

import (
	"context"
	"strings"

	"github.com/s3v-cli/s3v/pkg/catalog"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

// ListResult is the outcome of a listing: either the full history of one
// exact key, or one logical object per key under a prefix.
type ListResult struct {
	// Exact is set when the argument named one key with history
	Exact *model.VersionCatalog

	// Objects holds one summarized logical object per key under the prefix
	Objects []model.LogicalObject
}

// List inspects keyOrPrefix: when it names one exact key with history,
// the result carries that key's full catalog; otherwise it is treated
// as a prefix (a trailing slash is appended to avoid matching sibling
// keys) and the result carries one logical object per key.
func List(ctx context.Context, store storage.VersionedStore, keyOrPrefix string, opts ...Option) (*ListResult, error) {
	o := defaultOptions(opts)
	builder := catalog.New(store, catalog.WithLogger(o.l))

	catalogs, err := builder.Prefix(ctx, keyOrPrefix)
	if err != nil {
		return nil, err
	}

	for i := range catalogs {
		if catalogs[i].Key() == keyOrPrefix && !catalogs[i].IsEmpty() {
			return &ListResult{Exact: &catalogs[i]}, nil
		}
	}

	prefix := keyOrPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	result := &ListResult{}
	for _, c := range catalogs {
		if !strings.HasPrefix(c.Key(), prefix) {
			continue
		}
		result.Objects = append(result.Objects, c.Summarize())
	}
	return result, nil
}
