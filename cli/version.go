package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Long:  `Display the configured application name and version.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := loadSettings()
		fmt.Printf("%s %s\n", settings.AppName, settings.AppVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
