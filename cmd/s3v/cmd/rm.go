package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/model"
)

var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Soft-delete an object, or hard-delete one version",
	Long: `Without --version, writes a delete marker: the object reads as
deleted but every prior version remains and "undelete" can bring it
back.

With --version, permanently removes exactly the resolved version or
delete marker. This is unrecoverable.`,
	Aliases: []string{"del", "delete"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		target, err := model.ParseObjectPath(args[0])
		if err != nil {
			wrapFatalln("parse path", err)
			return
		}
		store := makeStore(target.Bucket)
		requireVersioning(ctx, store)

		if s3vFlags.version != "" {
			rec, err := core.DeleteVersion(ctx, store, target.Key, s3vFlags.version, opOptions()...)
			if err != nil {
				wrapFatalln("delete version of "+target.String(), err)
				return
			}
			infoLogger.Printf("permanently deleted version %s of %s", rec.VersionID, target.String())
			return
		}

		marker, err := core.Delete(ctx, store, target.Key, opOptions()...)
		if err != nil {
			wrapFatalln("delete "+target.String(), err)
			return
		}
		infoLogger.Printf("marked %s as deleted (delete marker %s)", target.String(), marker.VersionID)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	addVersionFlag(rmCmd, false)
}
