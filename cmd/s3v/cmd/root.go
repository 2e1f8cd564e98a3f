// Package cmd implements the s3v command line: a logical-object view
// over a versioned bucket, with human friendly version selectors.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s3v",
	Short: "s3v works with versioned S3 buckets",
	Long: `s3v gives a versioned S3 bucket a coherent "logical object" view:
a single current version per key, an ordered history, and soft-delete
semantics built on the bucket's native delete markers.

Wherever a command takes a version, it accepts several selector forms:
an exact version id, a keyword (latest, oldest, previous), an ordinal
index (0 = oldest, -1 = newest), or a point in time ("2024-03-01",
"yesterday"). The selector always resolves to exactly one version.

s3v assumes versioning is already enabled on the target bucket.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s3vFlags.loglevel, "loglevel", "none", "log level (debug|info|warn|error|none)")
	flags.StringVar(&s3vFlags.profile, "profile", "", "AWS shared-credentials profile to use")
	flags.StringVar(&s3vFlags.region, "region", "", "region of the target bucket")
	flags.StringVar(&s3vFlags.endpoint, "endpoint", "", "custom S3 endpoint (minio and other compatibles)")
	flags.IntVar(&s3vFlags.concurrency, "concurrency", 0, "max parallel requests for aggregate operations")

	_ = viper.BindPFlag("profile", flags.Lookup("profile"))
	_ = viper.BindPFlag("region", flags.Lookup("region"))
	_ = viper.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = viper.BindPFlag("loglevel", flags.Lookup("loglevel"))
	_ = viper.BindPFlag("concurrency", flags.Lookup("concurrency"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("loglevel", "none")
	viper.SetDefault("concurrency", 10)

	if os.Getenv("S3V_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("S3V_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.s3v")
		viper.AddConfigPath("/etc/s3v")
		viper.SetConfigName("s3v")
	}

	viper.SetEnvPrefix("s3v")
	viper.AutomaticEnv() // read in environment variables that match
	_ = viper.ReadInConfig()

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}
