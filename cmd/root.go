// Package cmd defines the go0r CLI: discovery, inspection, and
// one-shot rendering of frei0r video effect plugins.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ldo/go0r/internal/config"
	"github.com/ldo/go0r/internal/logger"
)

var (
	cfgFile string
	verbose bool
	output  string

	cfg *config.Config
	log zerolog.Logger

	appVersion = "dev"
	appCommit  = "none"
)

var rootCmd = &cobra.Command{
	Use:           "go0r",
	Short:         "Inspect and run frei0r video effect plugins",
	Long:          "go0r discovers frei0r plugin shared objects, inspects their parameter schemas, and applies effects to images from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		log = logger.Setup(cfg.Logging)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo injects build-time version metadata.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: go0r.yaml in the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
}
