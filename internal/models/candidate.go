package models

// CandidateReason identifies which pre-filter signal selected a transaction
// for external travel reclassification. A candidate carries exactly one reason.
type CandidateReason string

const (
	// ReasonAwayZip marks transactions whose resolved city differs from home.
	ReasonAwayZip CandidateReason = "away_zip"

	// ReasonTravelAnchor marks transactions at travel-infrastructure merchants
	// (hotels, airlines, car rentals). Anchors seed the temporal pass and take
	// priority over away_zip when both signals fire.
	ReasonTravelAnchor CandidateReason = "travel_anchor"

	// ReasonTemporalCluster marks away transactions promoted because they fall
	// within the cluster window of an anchor's date.
	ReasonTemporalCluster CandidateReason = "temporal_cluster"
)

// TravelCandidate pairs a transaction with the single signal that flagged it.
type TravelCandidate struct {
	Transaction Transaction     `json:"transaction" yaml:"transaction"`
	Reason      CandidateReason `json:"reason" yaml:"reason"`
}

// PreFilterStats summarizes a partition run. Reduction is the share of rows
// eliminated before the external call, as a rounded percentage.
type PreFilterStats struct {
	Total      int `json:"total" yaml:"total"`
	Home       int `json:"home" yaml:"home"`
	Candidates int `json:"candidates" yaml:"candidates"`
	Reduction  int `json:"reduction" yaml:"reduction"`
}
