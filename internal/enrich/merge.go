// Package enrich orchestrates the full pipeline: partition, external
// reclassification, and the merge of returned annotations onto the original
// transaction records.
package enrich

import "ventus/travel-enrich/internal/models"

// Merge layers travel annotations onto the original transactions, producing
// the enriched view. Input records are not mutated. Duplicate annotations
// for one id resolve last-wins; transactions without a matching travel
// annotation keep their original classification untouched.
func Merge(txs []models.Transaction, annotations []models.TravelAnnotation) []models.EnrichedTransaction {
	byID := make(map[string]models.TravelAnnotation, len(annotations))
	for _, a := range annotations {
		byID[a.TransactionID] = a
	}

	enriched := make([]models.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		e := models.EnrichedTransaction{
			Transaction:         tx,
			OriginalPillar:      tx.Pillar,
			OriginalSubcategory: tx.Subcategory,
		}

		if a, ok := byID[tx.TransactionID]; ok && a.IsTravelRelated {
			e.TravelContext = &models.TravelContext{
				PeriodStart: a.TravelPeriodStart,
				PeriodEnd:   a.TravelPeriodEnd,
				Destination: a.TravelDestination,
				Reason:      a.ReclassificationReason,
			}
			if a.ReclassifiedPillar != "" {
				e.Pillar = a.ReclassifiedPillar
			}
			if a.ReclassifiedSubcategory != "" {
				e.Subcategory = a.ReclassifiedSubcategory
			}
		}

		enriched = append(enriched, e)
	}
	return enriched
}
