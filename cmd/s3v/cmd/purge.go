package cmd

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/model"
)

var purgeCmd = &cobra.Command{
	Use:   "purge PATH",
	Short: "Permanently delete every version of an object",
	Long: `Remove every version and delete marker of one key. Unlike "rm",
nothing survives a purge: the object and its entire history are gone.

A failed deletion does not abort the rest: the purge makes maximal
progress and then reports which versions could not be removed.`,
	Aliases: []string{"wipe"},
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

		if !s3vFlags.yes && !confirm("permanently delete all versions of "+target.String()+"?") {
			infoLogger.Printf("aborted")
			return
		}

		result, err := core.Purge(ctx, store, target.Key, opOptions()...)
		if result != nil {
			infoLogger.Printf("purged %s: deleted %d of %d versions", target.String(), result.Deleted, result.Requested)
			for _, failure := range result.Failures {
				infoLogger.Printf("  failed: version %s: %v", failure.Record.VersionID, failure.Err)
			}
		}
		if err != nil {
			wrapFatalln("purge "+target.String(), err)
		}
	},
}

func confirm(prompt string) bool {
	infoLogger.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	addYesFlag(purgeCmd)
}
