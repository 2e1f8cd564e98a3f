package cmd

import (
	"github.com/spf13/cobra"
)

// s3vFlags gathers the flag values for all commands
var s3vFlags = struct {
	loglevel    string
	profile     string
	region      string
	endpoint    string
	concurrency int

	version string
	etag    bool
	batch   bool
	yes     bool
}{}

func addVersionFlag(cmd *cobra.Command, required bool) {
	cmd.Flags().StringVarP(&s3vFlags.version, "version", "v", "",
		"version selector: a version id, latest|oldest|previous, an index (0 = oldest, -1 = newest), or a point in time")
	if required {
		_ = cmd.MarkFlagRequired("version")
	}
}

func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&s3vFlags.yes, "yes", "y", false, "do not ask for confirmation")
}
