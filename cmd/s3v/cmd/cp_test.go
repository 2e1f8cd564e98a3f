package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/s3v-cli/s3v/pkg/storage/memvs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadKey(t *testing.T) {
	assert.Equal(t, "file.txt", uploadKey("", "file.txt"))
	assert.Equal(t, "dir/file.txt", uploadKey("dir/", "file.txt"))
	assert.Equal(t, "dir/other.bin", uploadKey("dir/other.bin", "file.txt"))
}

func TestLocalDestination(t *testing.T) {
	assert.Equal(t, "report.csv", localDestination(".", "data/report.csv"))
	assert.Equal(t, "out/report.csv", localDestination("out/", "data/report.csv"))
	assert.Equal(t, "out/renamed.csv", localDestination("out/renamed.csv", "data/report.csv"))
}

func TestIsLogicalDir(t *testing.T) {
	ctx := context.Background()
	store := memvs.New()
	_, err := store.Put(ctx, "archive/2024/jan.log", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	assert.True(t, isLogicalDir(ctx, store, "archive"))
	assert.True(t, isLogicalDir(ctx, store, "archive/2024"))
	assert.False(t, isLogicalDir(ctx, store, "archive/2024/jan.log"))
	assert.False(t, isLogicalDir(ctx, store, "elsewhere"))
	assert.False(t, isLogicalDir(ctx, store, ""))
}
