package enrich

import (
	"testing"
	"time"

	"ventus/travel-enrich/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeTx(id, pillar, subcategory string) models.Transaction {
	return models.Transaction{
		TransactionID: id,
		MerchantName:  "Merchant " + id,
		Date:          time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Pillar:        pillar,
		Subcategory:   subcategory,
	}
}

func TestMerge_OverlaysTravelAnnotations(t *testing.T) {
	txs := []models.Transaction{
		mergeTx("t1", models.PillarDining, "Restaurants"),
		mergeTx("t2", models.PillarShopping, ""),
	}
	annotations := []models.TravelAnnotation{
		{
			TransactionID:           "t1",
			IsTravelRelated:         true,
			TravelPeriodStart:       "2024-03-08",
			TravelPeriodEnd:         "2024-03-12",
			TravelDestination:       "New York",
			OriginalPillar:          models.PillarDining,
			ReclassifiedPillar:      models.PillarDining,
			ReclassifiedSubcategory: models.SubcategoryDiningAway,
			ReclassificationReason:  "dining during trip",
		},
	}

	enriched := Merge(txs, annotations)
	require.Len(t, enriched, 2)

	assert.True(t, enriched[0].IsTravel())
	assert.Equal(t, models.SubcategoryDiningAway, enriched[0].Subcategory)
	assert.Equal(t, "Restaurants", enriched[0].OriginalSubcategory)
	assert.Equal(t, "New York", enriched[0].TravelContext.Destination)

	assert.False(t, enriched[1].IsTravel())
	assert.Equal(t, models.PillarShopping, enriched[1].Pillar)
}

func TestMerge_NotTravelRelatedLeavesClassification(t *testing.T) {
	txs := []models.Transaction{mergeTx("t1", models.PillarShopping, "Online")}
	annotations := []models.TravelAnnotation{
		{TransactionID: "t1", IsTravelRelated: false},
	}

	enriched := Merge(txs, annotations)
	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].IsTravel())
	assert.Equal(t, models.PillarShopping, enriched[0].Pillar)
	assert.Equal(t, "Online", enriched[0].Subcategory)
}

func TestMerge_PillarOverrideOnlyWhenPresent(t *testing.T) {
	txs := []models.Transaction{mergeTx("t1", models.PillarDining, "Restaurants")}
	annotations := []models.TravelAnnotation{
		{
			TransactionID:     "t1",
			IsTravelRelated:   true,
			TravelDestination: "Chicago",
			// No reclassified pillar or subcategory.
		},
	}

	enriched := Merge(txs, annotations)
	require.Len(t, enriched, 1)
	assert.True(t, enriched[0].IsTravel())
	assert.Equal(t, models.PillarDining, enriched[0].Pillar)
	assert.Equal(t, "Restaurants", enriched[0].Subcategory)
}

func TestMerge_DuplicateAnnotationsLastWins(t *testing.T) {
	txs := []models.Transaction{mergeTx("t1", models.PillarShopping, "")}
	annotations := []models.TravelAnnotation{
		{TransactionID: "t1", IsTravelRelated: true, TravelDestination: "Denver"},
		{TransactionID: "t1", IsTravelRelated: true, TravelDestination: "Seattle"},
	}

	enriched := Merge(txs, annotations)
	require.Len(t, enriched, 1)
	require.True(t, enriched[0].IsTravel())
	assert.Equal(t, "Seattle", enriched[0].TravelContext.Destination)
}

func TestMerge_NoAnnotations(t *testing.T) {
	txs := []models.Transaction{
		mergeTx("t1", models.PillarDining, ""),
		mergeTx("t2", models.PillarShopping, ""),
	}

	enriched := Merge(txs, nil)
	require.Len(t, enriched, 2)
	for i, e := range enriched {
		assert.False(t, e.IsTravel())
		assert.Equal(t, txs[i].Pillar, e.Pillar)
		assert.Equal(t, txs[i].Pillar, e.OriginalPillar)
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	txs := []models.Transaction{mergeTx("t1", models.PillarDining, "Restaurants")}
	annotations := []models.TravelAnnotation{
		{
			TransactionID:           "t1",
			IsTravelRelated:         true,
			ReclassifiedPillar:      models.PillarTravel,
			ReclassifiedSubcategory: models.SubcategoryDiningAway,
		},
	}

	_ = Merge(txs, annotations)
	assert.Equal(t, models.PillarDining, txs[0].Pillar, "original record must stay untouched")
	assert.Equal(t, "Restaurants", txs[0].Subcategory)
}
