package enrich

import (
	"context"

	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
	"ventus/travel-enrich/internal/prefilter"
	"ventus/travel-enrich/internal/reclassify"

	"github.com/google/uuid"
)

// Annotator is the reclassification boundary, satisfied by
// reclassify.Requester and by test doubles.
type Annotator interface {
	Reclassify(ctx context.Context, candidates []models.Transaction, homeZip string) (<-chan reclassify.Event, error)
}

// RunResult is the outcome of one enrichment run. On a reclassification
// failure Partition and Enriched are still populated: the partition stays
// valid for a retry and the enriched view just carries the original
// classifications for whatever did not get annotated.
type RunResult struct {
	RunID       string
	Partition   prefilter.Result
	Annotations []models.TravelAnnotation
	Enriched    []models.EnrichedTransaction
}

// Enricher runs the end-to-end pipeline.
type Enricher struct {
	filter    *prefilter.PreFilter
	annotator Annotator
	log       logging.Logger
}

// New builds an Enricher.
func New(filter *prefilter.PreFilter, annotator Annotator, log logging.Logger) *Enricher {
	return &Enricher{filter: filter, annotator: annotator, log: log}
}

// Run partitions the transactions, streams the candidates through the
// reclassification service, and merges the annotations. The returned error
// reports a reclassification failure; the RunResult is usable either way.
// Cancelling ctx stops stream consumption but keeps annotations already
// merged.
func (e *Enricher) Run(ctx context.Context, txs []models.Transaction, homeZip string) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString()}
	log := e.log.WithField("run_id", result.RunID)

	partition, err := e.filter.Partition(txs, homeZip)
	if err != nil {
		return result, err
	}
	result.Partition = partition

	if len(partition.Candidates) == 0 {
		log.Info("No travel candidates, skipping reclassification")
		result.Enriched = Merge(txs, nil)
		return result, nil
	}

	events, err := e.annotator.Reclassify(ctx, partition.CandidateTransactions(), homeZip)
	if err != nil {
		result.Enriched = Merge(txs, nil)
		return result, err
	}

	var streamErr error
consume:
	for {
		select {
		case <-ctx.Done():
			streamErr = ctx.Err()
			break consume
		case ev, ok := <-events:
			if !ok {
				break consume
			}
			switch ev.Type {
			case reclassify.EventStatus:
				log.WithField("message", ev.Message).Debug("Reclassification progress")
			case reclassify.EventAnnotations:
				result.Annotations = append(result.Annotations, ev.Annotations...)
			case reclassify.EventError:
				streamErr = ev.Err
				break consume
			case reclassify.EventDone:
				break consume
			}
		}
	}

	result.Enriched = Merge(txs, result.Annotations)

	log.WithFields(
		logging.F("total", partition.Stats.Total),
		logging.F("candidates", partition.Stats.Candidates),
		logging.F("reduction_pct", partition.Stats.Reduction),
		logging.F("annotations", len(result.Annotations)),
	).Info("Enrichment run finished")

	if streamErr != nil {
		log.WithError(streamErr).Warn("Reclassification incomplete, original classifications retained")
	}
	return result, streamErr
}
