// Package common holds the shared wiring used by multiple commands.
package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"ventus/travel-enrich/internal/common"
	"ventus/travel-enrich/internal/config"
	"ventus/travel-enrich/internal/geo"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
	"ventus/travel-enrich/internal/prefilter"
	"ventus/travel-enrich/internal/store"
)

// BuildPreFilter assembles the resolver, the anchor keyword list, and the
// pre-filter from configuration.
func BuildPreFilter(cfg *config.Config, log logging.Logger) (*prefilter.PreFilter, *geo.Resolver, []string, error) {
	st := store.NewFileStore(cfg.PreFilter.AnchorsFile, cfg.PreFilter.CitiesFile, log)

	keywords, err := st.LoadAnchorKeywords()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading anchor keywords: %w", err)
	}

	prefixes, err := st.LoadCityPrefixes()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading city prefixes: %w", err)
	}

	resolver := geo.Default()
	if len(prefixes) > 0 {
		resolver = geo.NewResolver(prefixes)
	}

	filter := prefilter.New(resolver, keywords, cfg.PreFilter.WindowDays, log)
	return filter, resolver, keywords, nil
}

// ReadTransactions imports a transactions file, dispatching on extension.
func ReadTransactions(path string, log logging.Logger) ([]models.Transaction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return common.ReadTransactionsCSV(path, log)
	case ".json":
		return common.ReadTransactionsJSON(path, log)
	default:
		return nil, fmt.Errorf("unsupported input format %q (use .csv or .json)", filepath.Ext(path))
	}
}

// WriteEnriched exports enriched transactions, dispatching on extension.
func WriteEnriched(path string, enriched []models.EnrichedTransaction, log logging.Logger) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return common.WriteEnrichedCSV(path, enriched, log)
	case ".json":
		return common.WriteEnrichedJSON(path, enriched, log)
	default:
		return fmt.Errorf("unsupported output format %q (use .csv or .json)", filepath.Ext(path))
	}
}

// ResolveHomeZip picks the home ZIP: the flag wins, otherwise the uniform
// home_zip column carried by the transactions.
func ResolveHomeZip(flagValue string, txs []models.Transaction) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return strings.TrimSpace(flagValue), nil
	}
	for _, tx := range txs {
		if tx.HomeZip != "" {
			return tx.HomeZip, nil
		}
	}
	return "", fmt.Errorf("no home zip: pass --home-zip or include a home_zip column")
}
