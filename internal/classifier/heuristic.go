package classifier

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ventus/travel-enrich/internal/dateutils"
	"ventus/travel-enrich/internal/geo"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
)

// tripWindowDays is the radius around an anchor date that defines a trip.
// Wider than the pre-filter's cluster window so trips absorb the days
// around check-in and check-out.
const tripWindowDays = 3

// trip is an inferred travel period seeded by one or more anchor dates.
type trip struct {
	start       time.Time
	end         time.Time
	destination string
}

func (t trip) contains(day time.Time) bool {
	return !day.Before(t.start) && !day.After(t.end)
}

// HeuristicStrategy infers trips from anchor transactions and reclassifies
// candidates that fall inside a trip window. Deterministic, no network.
type HeuristicStrategy struct {
	resolver *geo.Resolver
	keywords []string
	log      logging.Logger
}

// NewHeuristicStrategy builds the fallback strategy. Keywords are the same
// travel-anchor list the pre-filter uses.
func NewHeuristicStrategy(resolver *geo.Resolver, keywords []string, log logging.Logger) *HeuristicStrategy {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &HeuristicStrategy{resolver: resolver, keywords: lowered, log: log}
}

// Name identifies the strategy in logs.
func (s *HeuristicStrategy) Name() string {
	return "Heuristic"
}

// Classify groups candidates into trips around anchors and annotates every
// candidate. Online rows (no ZIP) inside a trip keep their original
// classification per product rule.
func (s *HeuristicStrategy) Classify(ctx context.Context, candidates []models.Transaction, homeZip string) ([]models.TravelAnnotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trips := s.inferTrips(candidates, homeZip)
	s.log.WithFields(
		logging.F("strategy", s.Name()),
		logging.F("candidates", len(candidates)),
		logging.F("trips", len(trips)),
	).Debug("Inferred trip windows")

	annotations := make([]models.TravelAnnotation, 0, len(candidates))
	for _, tx := range candidates {
		annotations = append(annotations, s.annotate(tx, trips))
	}
	return annotations, nil
}

// inferTrips builds merged trip windows from anchor dates. Overlapping
// windows collapse into one trip; the destination comes from the first
// anchor whose ZIP resolves.
func (s *HeuristicStrategy) inferTrips(candidates []models.Transaction, homeZip string) []trip {
	var anchors []models.Transaction
	for _, tx := range candidates {
		if s.isAnchor(tx) {
			anchors = append(anchors, tx)
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i].Date.Before(anchors[j].Date) })

	homeCity, _ := s.resolver.ResolveCity(homeZip)

	var trips []trip
	for _, anchor := range anchors {
		start := anchor.Date.AddDate(0, 0, -tripWindowDays)
		end := anchor.Date.AddDate(0, 0, tripWindowDays)
		destination := ""
		if city, ok := s.resolver.ResolveCity(anchor.ZipCode); ok && city != homeCity {
			destination = city
		}

		if n := len(trips); n > 0 && !start.After(trips[n-1].end) {
			trips[n-1].end = end
			if trips[n-1].destination == "" {
				trips[n-1].destination = destination
			}
			continue
		}
		trips = append(trips, trip{start: start, end: end, destination: destination})
	}
	return trips
}

// annotate produces the verdict for one candidate against the trip windows.
func (s *HeuristicStrategy) annotate(tx models.Transaction, trips []trip) models.TravelAnnotation {
	var match *trip
	for i := range trips {
		if trips[i].contains(tx.Date) {
			match = &trips[i]
			break
		}
	}

	if match == nil {
		return models.TravelAnnotation{TransactionID: tx.TransactionID}
	}

	// Card-not-present rows keep their classification even inside a trip:
	// an online order placed from a hotel room is not travel spend.
	if !tx.HasZip() && !s.isAnchor(tx) {
		return models.TravelAnnotation{TransactionID: tx.TransactionID}
	}

	pillar, subcategory, kind := s.reclassify(tx)
	annotation := models.TravelAnnotation{
		TransactionID:           tx.TransactionID,
		IsTravelRelated:         true,
		TravelPeriodStart:       dateutils.FormatDate(match.start),
		TravelPeriodEnd:         dateutils.FormatDate(match.end),
		TravelDestination:       match.destination,
		OriginalPillar:          tx.Pillar,
		ReclassifiedPillar:      pillar,
		ReclassifiedSubcategory: subcategory,
		ReclassificationReason:  fmt.Sprintf("%s during trip %s to %s", kind, dateutils.FormatDate(match.start), destinationLabel(match.destination)),
	}
	return annotation
}

// reclassify maps a travel-window transaction onto its travel-aware
// pillar and subcategory, returning also a short label for the reason text.
func (s *HeuristicStrategy) reclassify(tx models.Transaction) (pillar, subcategory, kind string) {
	merchant := strings.ToLower(tx.Merchant())

	switch {
	case containsAny(merchant, "airline", "airlines", "airways", "jetblue", "southwest", "delta", "united", "alaska air", "spirit air", "frontier air"):
		return models.PillarTravel, models.SubcategoryAirfare, "airfare"
	case containsAny(merchant, "hotel", "motel", "resort", "marriott", "hilton", "hyatt", "westin", "sheraton", "airbnb", "vrbo", "inn "):
		return models.PillarTravel, models.SubcategoryLodging, "lodging"
	case containsAny(merchant, "hertz", "avis", "enterprise rent", "budget rent", "national car"):
		return models.PillarTravel, models.SubcategoryTravelTransport, "car rental"
	case containsAny(merchant, "airport", "parking"):
		return models.PillarTravel, models.SubcategoryTravelTransport, "airport or parking charge"
	case containsAny(merchant, "uber", "lyft", "taxi", "cab co"):
		return models.PillarTravel, models.SubcategoryLocalTransport, "rideshare"
	case containsAny(merchant, "shell", "chevron", "exxon", "mobil", "gas", "fuel", "76 station"):
		return models.PillarTravel, models.SubcategoryTravelTransport, "fuel purchase"
	case tx.Pillar == models.PillarDining || containsAny(merchant, "restaurant", "cafe", "grill", "diner", "bar "):
		return models.PillarDining, models.SubcategoryDiningAway, "dining away from home"
	default:
		return models.PillarTravel, "", "purchase away from home"
	}
}

func (s *HeuristicStrategy) isAnchor(tx models.Transaction) bool {
	merchant := strings.ToLower(tx.Merchant())
	for _, kw := range s.keywords {
		if strings.Contains(merchant, kw) {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func destinationLabel(destination string) string {
	if destination == "" {
		return "an away destination"
	}
	return destination
}
