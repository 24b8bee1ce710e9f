// Package resolve implements the one-off ZIP-to-city lookup command.
package resolve

import (
	"fmt"

	cmdcommon "ventus/travel-enrich/cmd/common"
	"ventus/travel-enrich/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the resolve command.
var Cmd = &cobra.Command{
	Use:   "resolve <zip>",
	Short: "Resolve a postal code to its metro label",
	Args:  cobra.ExactArgs(1),
	Run:   resolveFunc,
}

func resolveFunc(cmd *cobra.Command, args []string) {
	log := root.Logger()

	_, resolver, _, err := cmdcommon.BuildPreFilter(root.Cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load city table")
	}

	zip := args[0]
	if city, ok := resolver.ResolveCity(zip); ok {
		fmt.Printf("%s -> %s\n", zip, city)
	} else {
		fmt.Printf("%s -> no match\n", zip)
	}
}
