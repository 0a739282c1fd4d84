package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// InitVersionCommands registers the version command with the root command.
func InitVersionCommands(rootCmd *cobra.Command) error {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("xferdx-cli", Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	return nil
}
