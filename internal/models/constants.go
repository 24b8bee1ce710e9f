package models

// Pillar names used across the enrichment pipeline. Upstream categorization
// assigns the lifestyle pillars; the travel reclassifier maps flagged rows
// into the travel-specific ones.
const (
	PillarDining        = "Dining"
	PillarGroceries     = "Groceries"
	PillarShopping      = "Shopping"
	PillarTransport     = "Transportation"
	PillarTravel        = "Travel"
	PillarEntertainment = "Entertainment"
	PillarWellness      = "Wellness"
	PillarUncategorized = "Uncategorized"
)

// Travel-aware reclassification targets.
const (
	SubcategoryTravelTransport = "Travel Transportation"
	SubcategoryDiningAway      = "Dining Away"
	SubcategoryLocalTransport  = "Local Transportation"
	SubcategoryLodging         = "Lodging"
	SubcategoryAirfare         = "Airfare"
)
