package cmd

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/model"
	"github.com/s3v-cli/s3v/pkg/storage"
)

var cpCmd = &cobra.Command{
	Use:   "cp SRC DST",
	Short: "Copy an object version to a local file, or upload a local file",
	Long: `Copy between a versioned bucket and the local filesystem.

Exactly one side must be a remote path (s3://bucket/key). Downloads take
an optional --version selector; uploads always create a brand-new
version of the destination key.

A local destination of "." or ending in "/" uses the key's base name.
A remote destination ending in "/" (or naming an existing logical
directory) appends the source file name.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		src, dst := args[0], args[1]
		switch {
		case model.IsObjectPath(src) && !model.IsObjectPath(dst):
			download(src, dst)
		case !model.IsObjectPath(src) && model.IsObjectPath(dst):
			upload(src, dst)
		default:
			wrapFatalWithCodef(2, "exactly one of SRC, DST must be a remote s3:// path")
		}
	},
}

func download(src, dst string) {
	ctx := context.Background()
	remote, err := model.ParseObjectPath(src)
	if err != nil {
		wrapFatalln("parse source", err)
		return
	}
	store := makeStore(remote.Bucket)

	rdr, rec, err := core.Fetch(ctx, store, remote.Key, s3vFlags.version, opOptions()...)
	if err != nil {
		wrapFatalln("fetch "+remote.String(), err)
		return
	}
	defer func() {
		_ = rdr.Close()
	}()

	target := localDestination(dst, remote.Key)
	if err = appFs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		wrapFatalln("create destination directory", err)
		return
	}
	w, err := appFs.Create(target)
	if err != nil {
		wrapFatalln("create "+target, err)
		return
	}
	defer func() {
		_ = w.Close()
	}()
	if _, err = io.Copy(w, rdr); err != nil {
		wrapFatalln("write "+target, err)
		return
	}
	infoLogger.Printf("downloaded %s (version %s, %s) to %s",
		remote.String(), rec.VersionID, rec.HumanSize(), target)
}

func upload(src, dst string) {
	ctx := context.Background()
	remote, err := model.ParseObjectPath(dst)
	if err != nil {
		wrapFatalln("parse destination", err)
		return
	}
	store := makeStore(remote.Bucket)

	f, err := appFs.Open(src)
	if err != nil {
		wrapFatalln("open "+src, err)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	base := filepath.Base(src)
	key := uploadKey(remote.Key, base)
	if key == remote.Key && isLogicalDir(ctx, store, key) {
		key = key + "/" + base
	}

	rec, err := store.Put(ctx, key, f)
	if err != nil {
		wrapFatalln("upload to "+model.ObjectPath{Bucket: remote.Bucket, Key: key}.String(), err)
		return
	}
	infoLogger.Printf("uploaded %s to s3://%s/%s (version %s)", src, remote.Bucket, key, rec.VersionID)
}

// uploadKey decides the destination key for an upload, before any
// logical-directory lookup: a trailing slash or an empty key appends
// the source file name, anything else is taken as the full key.
func uploadKey(key, base string) string {
	switch {
	case key == "":
		return base
	case strings.HasSuffix(key, "/"):
		return key + base
	default:
		return key
	}
}

// isLogicalDir reports whether some key exists under key + "/"
func isLogicalDir(ctx context.Context, store storage.VersionedStore, key string) bool {
	if key == "" || strings.HasSuffix(key, "/") {
		return false
	}
	found := false
	_ = store.ListVersions(ctx, key+"/", func(page []model.VersionRecord, _ bool) bool {
		found = found || len(page) > 0
		return !found
	})
	return found
}

// localDestination maps a local path argument to the file to write:
// "." and trailing-slash paths get the key's base name appended.
func localDestination(dst, key string) string {
	if dst == "." || strings.HasSuffix(dst, "/") {
		return filepath.Join(dst, path.Base(key))
	}
	return dst
}

func init() {
	rootCmd.AddCommand(cpCmd)
	addVersionFlag(cpCmd, false)
}
