package enrich

import (
	"context"
	"testing"
	"time"

	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/geo"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
	"ventus/travel-enrich/internal/prefilter"
	"ventus/travel-enrich/internal/reclassify"
	"ventus/travel-enrich/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnnotator replays a canned event sequence.
type stubAnnotator struct {
	events     []reclassify.Event
	err        error
	gotHomeZip string
	gotCount   int
	called     bool
}

func (s *stubAnnotator) Reclassify(ctx context.Context, candidates []models.Transaction, homeZip string) (<-chan reclassify.Event, error) {
	s.called = true
	s.gotHomeZip = homeZip
	s.gotCount = len(candidates)
	if s.err != nil {
		return nil, s.err
	}
	ch := make(chan reclassify.Event, len(s.events))
	for _, ev := range s.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func pipelineTx(id, merchant, zip, date string) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{
		TransactionID: id,
		MerchantName:  merchant,
		Date:          d,
		ZipCode:       zip,
		Pillar:        models.PillarShopping,
	}
}

func newEnricher(t *testing.T, annotator Annotator) *Enricher {
	t.Helper()
	filter := prefilter.New(geo.Default(), store.DefaultAnchorKeywords(), prefilter.DefaultWindowDays, logging.NewMockLogger())
	return New(filter, annotator, logging.NewMockLogger())
}

func TestRun_AccumulatesChunkedAnnotations(t *testing.T) {
	// Three candidates; annotations arrive as a batch of two then a batch of
	// one. The run must end with all three.
	annotator := &stubAnnotator{events: []reclassify.Event{
		{Type: reclassify.EventStatus, Message: "working"},
		{Type: reclassify.EventAnnotations, Annotations: []models.TravelAnnotation{
			{TransactionID: "hotel", IsTravelRelated: true, ReclassifiedPillar: models.PillarTravel},
			{TransactionID: "gas", IsTravelRelated: true, ReclassifiedPillar: models.PillarTravel},
		}},
		{Type: reclassify.EventAnnotations, Annotations: []models.TravelAnnotation{
			{TransactionID: "store", IsTravelRelated: false},
		}},
		{Type: reclassify.EventDone},
	}}

	txs := []models.Transaction{
		pipelineTx("hotel", "Marriott Midtown", "10001", "2024-03-10"),
		pipelineTx("gas", "Shell", "10002", "2024-03-11"),
		pipelineTx("store", "Macy's", "10003", "2024-03-11"),
		pipelineTx("latte", "Blue Bottle", "94103", "2024-03-11"),
	}

	result, err := newEnricher(t, annotator).Run(context.Background(), txs, "94102")
	require.NoError(t, err)

	assert.Equal(t, 3, annotator.gotCount)
	assert.Equal(t, "94102", annotator.gotHomeZip)
	assert.Len(t, result.Annotations, 3)
	require.Len(t, result.Enriched, 4)
	assert.NotEmpty(t, result.RunID)

	byID := map[string]models.EnrichedTransaction{}
	for _, e := range result.Enriched {
		byID[e.TransactionID] = e
	}
	assert.True(t, byID["hotel"].IsTravel())
	assert.True(t, byID["gas"].IsTravel())
	assert.False(t, byID["store"].IsTravel())
	assert.False(t, byID["latte"].IsTravel())
}

func TestRun_NoCandidatesSkipsService(t *testing.T) {
	annotator := &stubAnnotator{}

	txs := []models.Transaction{
		pipelineTx("a", "Starbucks", "94105", "2024-03-09"),
	}

	result, err := newEnricher(t, annotator).Run(context.Background(), txs, "94102")
	require.NoError(t, err)
	assert.False(t, annotator.called)
	assert.Len(t, result.Enriched, 1)
	assert.Empty(t, result.Annotations)
}

func TestRun_ServiceErrorKeepsPartitionAndOriginals(t *testing.T) {
	annotator := &stubAnnotator{events: []reclassify.Event{
		{Type: reclassify.EventError, Err: &apperror.ServiceUnavailableError{StatusCode: 500}},
	}}

	txs := []models.Transaction{
		pipelineTx("hotel", "Marriott Midtown", "10001", "2024-03-10"),
		pipelineTx("latte", "Blue Bottle", "94103", "2024-03-11"),
	}

	result, err := newEnricher(t, annotator).Run(context.Background(), txs, "94102")

	var unavailable *apperror.ServiceUnavailableError
	require.ErrorAs(t, err, &unavailable)

	// Partition stays valid for a retry without recomputation, and the
	// enriched view still exists with original classifications.
	assert.Equal(t, 2, result.Partition.Stats.Total)
	assert.Len(t, result.Partition.Candidates, 1)
	require.Len(t, result.Enriched, 2)
	for _, e := range result.Enriched {
		assert.False(t, e.IsTravel())
		assert.Equal(t, models.PillarShopping, e.Pillar)
	}
}

func TestRun_PartialAnnotationsBeforeError(t *testing.T) {
	annotator := &stubAnnotator{events: []reclassify.Event{
		{Type: reclassify.EventAnnotations, Annotations: []models.TravelAnnotation{
			{TransactionID: "hotel", IsTravelRelated: true, ReclassifiedPillar: models.PillarTravel},
		}},
		{Type: reclassify.EventError, Err: &apperror.ClassificationError{Detail: "mid-stream failure"}},
	}}

	txs := []models.Transaction{
		pipelineTx("hotel", "Marriott Midtown", "10001", "2024-03-10"),
		pipelineTx("gas", "Shell", "10002", "2024-03-11"),
	}

	result, err := newEnricher(t, annotator).Run(context.Background(), txs, "94102")

	var classification *apperror.ClassificationError
	require.ErrorAs(t, err, &classification)

	// Annotations delivered before the failure stay merged.
	byID := map[string]models.EnrichedTransaction{}
	for _, e := range result.Enriched {
		byID[e.TransactionID] = e
	}
	assert.True(t, byID["hotel"].IsTravel())
	assert.False(t, byID["gas"].IsTravel())
}

func TestRun_ValidationErrorFromPartition(t *testing.T) {
	annotator := &stubAnnotator{}

	txs := []models.Transaction{{MerchantName: "No ID"}}
	_, err := newEnricher(t, annotator).Run(context.Background(), txs, "94102")

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, annotator.called)
}
