package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/model"
)

const lsTimeLayout = "2006-01-02 15:04:05"

var lsCmd = &cobra.Command{
	Use:   "ls PATH",
	Short: "List logical objects, or the full history of one key",
	Long: `List objects in a versioned bucket.

When PATH names one exact key with history, every version is shown,
delete markers included. Otherwise PATH is treated as a prefix and one
line per logical object is shown: current mtime, size, version count
and whether the object is soft-deleted.`,
	Aliases: []string{"list"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		target, err := model.ParseObjectPath(args[0])
		if err != nil {
			wrapFatalln("parse path", err)
			return
		}
		store := makeStore(target.Bucket)

		result, err := core.List(ctx, store, target.Key, opOptions()...)
		if err != nil {
			wrapFatalln("list "+target.String(), err)
			return
		}

		switch {
		case result.Exact != nil:
			printHistory(*result.Exact)
		case s3vFlags.batch:
			for _, obj := range result.Objects {
				fmt.Println(obj.Key)
			}
		default:
			printObjects(result.Objects, target.Key)
		}
	},
}

func printHistory(c model.VersionCatalog) {
	header := c.Key()
	if c.IsDeleted() {
		header += " " + color.RedString("[deleted]")
	}
	fmt.Println(header)

	table := uitable.New()
	table.MaxColWidth = 80
	for _, rec := range c.Records() {
		when := rec.LastModified.UTC().Format(lsTimeLayout)
		switch {
		case rec.IsDeleteMarker && rec.IsLatest:
			table.AddRow("", rec.VersionID, color.RedString("[DELETED]"), when)
		case rec.IsDeleteMarker:
			table.AddRow("", rec.VersionID, "[OLD DM]", when)
		case s3vFlags.etag:
			table.AddRow("", rec.VersionID, rec.HumanSize(), when, rec.ETag)
		default:
			table.AddRow("", rec.VersionID, rec.HumanSize(), when)
		}
	}
	fmt.Println(table)
}

func printObjects(objects []model.LogicalObject, prefix string) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("KEY", "MODIFIED", "SIZE", "VERSIONS", "")
	for _, obj := range objects {
		key := strings.TrimPrefix(obj.Key, prefix)
		var modified time.Time
		var size string
		if obj.Current != nil {
			modified = obj.Current.LastModified
			size = obj.Current.HumanSize()
		}
		status := ""
		if obj.IsDeleted {
			status = color.RedString("[DEL]")
		}
		table.AddRow(key, modified.UTC().Format(lsTimeLayout), size, obj.VersionCount, status)
	}
	fmt.Println(table)
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&s3vFlags.etag, "etag", false, "show version ETags")
	lsCmd.Flags().BoolVar(&s3vFlags.batch, "batch", false, "print bare key names only")
}
