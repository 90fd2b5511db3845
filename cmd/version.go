package cmd

import (
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fanduty",
	Long:  `All software has versions. This is fanduty's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("%s", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
