package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectPath(t *testing.T) {
	for _, toPin := range []struct {
		input  string
		bucket string
		key    string
	}{
		{"s3://mybucket/some/key.txt", "mybucket", "some/key.txt"},
		{"mybucket/some/key.txt", "mybucket", "some/key.txt"},
		{"s3://mybucket", "mybucket", ""},
		{"mybucket/", "mybucket", ""},
		{"s3://mybucket/prefix/", "mybucket", "prefix/"},
	} {
		testcase := toPin
		p, err := ParseObjectPath(testcase.input)
		require.NoError(t, err, testcase.input)
		assert.Equal(t, testcase.bucket, p.Bucket)
		assert.Equal(t, testcase.key, p.Key)
	}
}

func TestParseObjectPathInvalid(t *testing.T) {
	for _, input := range []string{"", "s3://", "s3:///key"} {
		_, err := ParseObjectPath(input)
		require.Error(t, err, input)
		assert.ErrorIs(t, err, ErrInvalidPath)
	}
}

func TestObjectPathString(t *testing.T) {
	assert.Equal(t, "s3://b/k/v.txt", ObjectPath{Bucket: "b", Key: "k/v.txt"}.String())
	assert.Equal(t, "s3://b", ObjectPath{Bucket: "b"}.String())
}

func TestIsObjectPath(t *testing.T) {
	assert.True(t, IsObjectPath("s3://b/k"))
	assert.False(t, IsObjectPath("./local/file"))
	assert.False(t, IsObjectPath("bucket/key"))
}
