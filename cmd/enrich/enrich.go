// Package enrich implements the end-to-end enrichment command.
package enrich

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	cmdcommon "ventus/travel-enrich/cmd/common"
	"ventus/travel-enrich/cmd/root"
	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/enrich"
	"ventus/travel-enrich/internal/reclassify"

	"github.com/spf13/cobra"
)

var serviceURL string

// Cmd represents the enrich command.
var Cmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run the full travel enrichment pipeline over a transactions file",
	Long: `Reads categorized transactions, partitions them into home-zone and travel
candidates, streams the candidates through the reclassification service, and
writes the merged enriched records. If the service is unavailable the output
still carries the original classifications.`,
	Run: enrichFunc,
}

func init() {
	Cmd.Flags().StringVar(&serviceURL, "service-url", "", "Reclassification service base URL (default from config)")
	_ = Cmd.MarkFlagFilename("input", "csv", "json")
}

func enrichFunc(cmd *cobra.Command, args []string) {
	log := root.Logger()

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		log.Fatal("Both --input and --output are required")
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

	url := serviceURL
	if url == "" {
		url = root.Cfg.Service.URL
	}
	requester := reclassify.NewRequester(url, root.Cfg.ServiceTimeout(), log)
	enricher := enrich.New(filter, requester, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := enricher.Run(ctx, txs, homeZip)
	if err != nil {
		var unavailable *apperror.ServiceUnavailableError
		var classification *apperror.ClassificationError
		switch {
		case errors.As(err, &unavailable):
			log.WithError(err).Warn("Reclassification service unavailable; writing original classifications")
		case errors.As(err, &classification):
			log.WithError(err).Warn("Reclassification partially failed; unannotated rows keep their pillar")
		default:
			log.WithError(err).Fatal("Enrichment failed")
		}
	}

	if err := cmdcommon.WriteEnriched(root.SharedFlags.Output, result.Enriched, log); err != nil {
		log.WithError(err).Fatal("Failed to write output")
	}
}
