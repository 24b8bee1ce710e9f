// Package prefilter implements the partition-only command, useful for
// inspecting the reduction before paying for the external call.
package prefilter

import (
	"encoding/json"
	"os"

	cmdcommon "ventus/travel-enrich/cmd/common"
	"ventus/travel-enrich/cmd/root"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"

	"github.com/spf13/cobra"
)

// partitionDump is the JSON artifact written by --output: enough to retry
// reclassification later without recomputing the partition.
type partitionDump struct {
	HomeZip    string                   `json:"home_zip"`
	Stats      models.PreFilterStats    `json:"stats"`
	Candidates []models.TravelCandidate `json:"candidates"`
	HomeZone   []models.Transaction     `json:"home_zone"`
}

// Cmd represents the prefilter command.
var Cmd = &cobra.Command{
	Use:   "prefilter",
	Short: "Partition transactions into home zone and travel candidates",
	Run:   prefilterFunc,
}

func prefilterFunc(cmd *cobra.Command, args []string) {
	log := root.Logger()

	if root.SharedFlags.Input == "" {
		log.Fatal("--input is required")
	}

	txs, err := cmdcommon.ReadTransactions(root.SharedFlags.Input, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to read transactions")
	}

	homeZip, err := cmdcommon.ResolveHomeZip(root.SharedFlags.HomeZip, txs)
	if err != nil {
		log.WithError(err).Fatal("Cannot determine home zip")
	}

	filter, _, _, err := cmdcommon.BuildPreFilter(root.Cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to build pre-filter")
	}

	result, err := filter.Partition(txs, homeZip)
	if err != nil {
		log.WithError(err).Fatal("Partition failed")
	}

	for _, c := range result.Candidates {
		log.WithFields(
			logging.F("id", c.Transaction.TransactionID),
			logging.F("merchant", c.Transaction.Merchant()),
			logging.F("reason", c.Reason),
		).Info("Travel candidate")
	}

	if root.SharedFlags.Output != "" {
		dump := partitionDump{
			HomeZip:    homeZip,
			Stats:      result.Stats,
			Candidates: result.Candidates,
			HomeZone:   result.HomeZone,
		}
		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			log.WithError(err).Fatal("Failed to encode partition")
		}
		if err := os.WriteFile(root.SharedFlags.Output, data, 0o644); err != nil {
			log.WithError(err).Fatal("Failed to write partition file")
		}
		log.WithField("file", root.SharedFlags.Output).Info("Wrote partition dump")
	}
}
