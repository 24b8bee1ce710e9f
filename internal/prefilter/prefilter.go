// Package prefilter partitions a user's transactions into a home zone and a
// set of travel candidates, so only the candidates are forwarded to the
// expensive external reclassification call.
package prefilter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/dateutils"
	"ventus/travel-enrich/internal/geo"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
)

// DefaultWindowDays is the cluster radius around an anchor date.
const DefaultWindowDays = 2

// Result is the outcome of one partition run. HomeZone and Candidates are
// disjoint and together cover every input transaction.
type Result struct {
	HomeZone   []models.Transaction
	Candidates []models.TravelCandidate
	Stats      models.PreFilterStats
}

// CandidateTransactions strips the reason tags, yielding the payload for the
// reclassification request.
func (r Result) CandidateTransactions() []models.Transaction {
	txs := make([]models.Transaction, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		txs = append(txs, c.Transaction)
	}
	return txs
}

// PreFilter evaluates the three travel signals: anchor merchant keywords,
// away ZIP codes, and temporal proximity to anchors.
type PreFilter struct {
	resolver   *geo.Resolver
	keywords   []string
	windowDays int
	log        logging.Logger
}

// New builds a PreFilter. Keywords are matched as lowercase substrings of
// the merchant label. A non-positive windowDays falls back to the default.
func New(resolver *geo.Resolver, keywords []string, windowDays int, log logging.Logger) *PreFilter {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &PreFilter{
		resolver:   resolver,
		keywords:   lowered,
		windowDays: windowDays,
		log:        log,
	}
}

// Partition splits transactions into home zone and travel candidates.
//
// Pass 1 tags direct signals per transaction: an anchor-keyword match wins
// over an away ZIP when both fire, so each candidate carries one reason.
// Pass 2 then promotes provisional home rows that carry a ZIP not resolving
// to the home city and sit within the cluster window of some anchor date.
// Rows without a ZIP are never promoted: with no way to place them away from
// home they are assumed local.
//
// Soft per-row defects (missing ZIP, unknown prefix) degrade to "no signal";
// only structurally invalid rows reject the whole batch.
func (f *PreFilter) Partition(txs []models.Transaction, homeZip string) (Result, error) {
	if err := validate(txs); err != nil {
		return Result{}, err
	}

	homeCity, homeResolved := f.resolver.ResolveCity(homeZip)

	var (
		candidates  []models.TravelCandidate
		provisional []models.Transaction
		anchorDates []time.Time
	)

	for _, tx := range txs {
		if f.matchesAnchor(tx) {
			candidates = append(candidates, models.TravelCandidate{
				Transaction: tx,
				Reason:      models.ReasonTravelAnchor,
			})
			anchorDates = append(anchorDates, tx.Date)
			continue
		}

		if city, ok := f.resolver.ResolveCity(tx.ZipCode); ok && homeResolved && city != homeCity {
			candidates = append(candidates, models.TravelCandidate{
				Transaction: tx,
				Reason:      models.ReasonAwayZip,
			})
			continue
		}

		provisional = append(provisional, tx)
	}

	homeZone := make([]models.Transaction, 0, len(provisional))
	for _, tx := range provisional {
		if f.inTravelWindow(tx, homeCity, homeResolved, anchorDates) {
			candidates = append(candidates, models.TravelCandidate{
				Transaction: tx,
				Reason:      models.ReasonTemporalCluster,
			})
			continue
		}
		homeZone = append(homeZone, tx)
	}

	result := Result{
		HomeZone:   homeZone,
		Candidates: candidates,
		Stats:      computeStats(len(txs), len(homeZone), len(candidates)),
	}

	f.log.WithFields(
		logging.F("total", result.Stats.Total),
		logging.F("home", result.Stats.Home),
		logging.F("candidates", result.Stats.Candidates),
		logging.F("reduction_pct", result.Stats.Reduction),
	).Info("Pre-filter partition complete")

	return result, nil
}

// matchesAnchor reports whether the merchant label contains any anchor
// keyword.
func (f *PreFilter) matchesAnchor(tx models.Transaction) bool {
	merchant := strings.ToLower(tx.Merchant())
	if merchant == "" {
		return false
	}
	for _, kw := range f.keywords {
		if strings.Contains(merchant, kw) {
			return true
		}
	}
	return false
}

// inTravelWindow decides pass-2 promotion: the row must carry a ZIP that does
// not resolve to the home city, and its date must be within the window of the
// nearest anchor.
func (f *PreFilter) inTravelWindow(tx models.Transaction, homeCity string, homeResolved bool, anchors []time.Time) bool {
	if len(anchors) == 0 || !tx.HasZip() {
		return false
	}
	if city, ok := f.resolver.ResolveCity(tx.ZipCode); ok && homeResolved && city == homeCity {
		return false
	}
	for _, anchor := range anchors {
		if dateutils.DaysBetween(tx.Date, anchor) <= f.windowDays {
			return true
		}
	}
	return false
}

func validate(txs []models.Transaction) error {
	for i, tx := range txs {
		if strings.TrimSpace(tx.TransactionID) == "" {
			return &apperror.ValidationError{
				Field:  "transaction_id",
				Reason: fmt.Sprintf("missing id at index %d", i),
			}
		}
		if tx.Date.IsZero() {
			return &apperror.ValidationError{
				Field:  "date",
				Reason: fmt.Sprintf("missing date for transaction %s", tx.TransactionID),
			}
		}
	}
	return nil
}

func computeStats(total, home, candidates int) models.PreFilterStats {
	stats := models.PreFilterStats{
		Total:      total,
		Home:       home,
		Candidates: candidates,
	}
	if total > 0 {
		stats.Reduction = int(math.Round(float64(home) / float64(total) * 100))
	}
	return stats
}
