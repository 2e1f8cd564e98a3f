package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

// appFs is the local filesystem boundary, patched to a memory fs in tests
var appFs = afero.NewOsFs()

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// viper.Unmarshal matches on field names: keep them aligned with the serialized keys
	Profile     string `json:"profile" yaml:"profile"`         // AWS shared-credentials profile
	Region      string `json:"region" yaml:"region"`           // bucket region
	Endpoint    string `json:"endpoint" yaml:"endpoint"`       // custom endpoint for S3 compatibles
	Loglevel    string `json:"loglevel" yaml:"loglevel"`       // log level
	Concurrency int    `json:"concurrency" yaml:"concurrency"` // max parallel requests
}

func newConfig() (*CLIConfig, error) {
	var c CLIConfig
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the s3v config file",
	Long: `Commands to manage the s3v CLI config file.

The configuration holds the flags that do not change across runs
(profile, region, endpoint), analogous to "git config ...".`,
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a config file from the current flags",
	Run: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			wrapFatalln("locate home directory", err)
			return
		}
		dir := filepath.Join(home, ".s3v")
		if err := appFs.MkdirAll(dir, 0700); err != nil {
			wrapFatalln("create config directory", err)
			return
		}

		data, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config", err)
			return
		}
		target := filepath.Join(dir, "s3v.yaml")
		if err := afero.WriteFile(appFs, target, data, 0600); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		infoLogger.Printf("wrote %s", target)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGenerateCmd)
}
