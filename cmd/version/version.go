// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Cmd represents the version command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the travel-enrich version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("travel-enrich %s\n", Version)
	},
}
