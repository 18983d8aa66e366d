package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ldo/go0r/pkg/frei0r"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("go0r %s (%s), frei0r ABI %d.%d\n",
			appVersion, appCommit, frei0r.MajorVersion, frei0r.MinorVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
