package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/storage"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List the buckets visible to the current credentials",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store := makeStore("")
		lister, ok := store.(storage.BucketLister)
		if !ok {
			wrapFatalWithCodef(2, "this store cannot enumerate buckets")
			return
		}

		buckets, err := lister.Buckets(ctx)
		if err != nil {
			wrapFatalln("list buckets", err)
			return
		}
		sort.Slice(buckets, func(i, j int) bool { return buckets[i].Name < buckets[j].Name })

		table := uitable.New()
		table.MaxColWidth = 60
		for _, b := range buckets {
			table.AddRow(b.Name, b.CreatedAt.Format(time.RFC3339))
		}
		fmt.Println(table)
	},
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
}
