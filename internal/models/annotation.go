package models

// TravelAnnotation is the per-transaction verdict returned by the
// reclassification service. Date fields use ISO YYYY-MM-DD strings because
// they travel over the wire and may be absent when IsTravelRelated is false.
type TravelAnnotation struct {
	TransactionID           string `json:"transaction_id" yaml:"transaction_id"`
	IsTravelRelated         bool   `json:"is_travel_related" yaml:"is_travel_related"`
	TravelPeriodStart       string `json:"travel_period_start,omitempty" yaml:"travel_period_start,omitempty"`
	TravelPeriodEnd         string `json:"travel_period_end,omitempty" yaml:"travel_period_end,omitempty"`
	TravelDestination       string `json:"travel_destination,omitempty" yaml:"travel_destination,omitempty"`
	OriginalPillar          string `json:"original_pillar,omitempty" yaml:"original_pillar,omitempty"`
	ReclassifiedPillar      string `json:"reclassified_pillar,omitempty" yaml:"reclassified_pillar,omitempty"`
	ReclassifiedSubcategory string `json:"reclassified_subcategory,omitempty" yaml:"reclassified_subcategory,omitempty"`
	ReclassificationReason  string `json:"reclassification_reason,omitempty" yaml:"reclassification_reason,omitempty"`
}

// TravelContext is the annotation overlay carried by an enriched transaction.
type TravelContext struct {
	PeriodStart string `json:"travel_period_start,omitempty" yaml:"travel_period_start,omitempty"`
	PeriodEnd   string `json:"travel_period_end,omitempty" yaml:"travel_period_end,omitempty"`
	Destination string `json:"travel_destination,omitempty" yaml:"travel_destination,omitempty"`
	Reason      string `json:"reclassification_reason,omitempty" yaml:"reclassification_reason,omitempty"`
}

// EnrichedTransaction is the merged output view: the original record with the
// possibly reclassified pillar and, for travel rows, the travel context.
// OriginalPillar always preserves the pre-enrichment classification.
type EnrichedTransaction struct {
	Transaction         `yaml:",inline"`
	OriginalPillar      string         `json:"original_pillar" yaml:"original_pillar"`
	OriginalSubcategory string         `json:"original_subcategory,omitempty" yaml:"original_subcategory,omitempty"`
	TravelContext       *TravelContext `json:"travel_context,omitempty" yaml:"travel_context,omitempty"`
}

// IsTravel reports whether the merger attached a travel annotation.
func (e EnrichedTransaction) IsTravel() bool {
	return e.TravelContext != nil
}
