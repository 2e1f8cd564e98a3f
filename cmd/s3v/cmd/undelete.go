package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/model"
)

var undeleteCmd = &cobra.Command{
	Use:   "undelete PATH",
	Short: "Restore a soft-deleted object",
	Long: `Remove the delete marker currently hiding an object, restoring the
most recent content version as current.

An object that is already live is left untouched: undelete is
idempotent.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		target, err := model.ParseObjectPath(args[0])
		if err != nil {
			wrapFatalln("parse path", err)
			return
		}
		store := makeStore(target.Bucket)

		result, err := core.Undelete(ctx, store, target.Key, opOptions()...)
		if err != nil {
			wrapFatalln("undelete "+target.String(), err)
			return
		}
		switch {
		case result.NoOp:
			infoLogger.Printf("%s is not deleted, nothing to do", target.String())
		case result.Restored != nil:
			infoLogger.Printf("restored %s to version %s", target.String(), result.Restored.VersionID)
		default:
			infoLogger.Printf("removed delete marker from %s (no content version remains)", target.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(undeleteCmd)
}
