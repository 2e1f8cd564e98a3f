package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/model"
)

var recoverCmd = &cobra.Command{
	Use:   "recover PATH",
	Short: "Make a historical version the current one",
	Long: `Re-upload the content of the selected version as a brand-new version
of the same key, which becomes the new latest.

Recovery is additive: the historical version it reads from stays in the
history unchanged. Selectors resolving to a delete marker are rejected;
use "undelete" to remove a deletion.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		target, err := model.ParseObjectPath(args[0])
		if err != nil {
			wrapFatalln("parse path", err)
			return
		}
		store := makeStore(target.Bucket)

		result, err := core.Recover(ctx, store, target.Key, s3vFlags.version, opOptions()...)
		if err != nil {
			wrapFatalln("recover "+target.String(), err)
			return
		}
		infoLogger.Printf("recovered version %s of %s as new current version %s",
			result.Source.VersionID, target.String(), result.NewVersion.VersionID)
	},
}

func init() {
	rootCmd.AddCommand(recoverCmd)
	addVersionFlag(recoverCmd, true)
}
