package classifier

import (
	"strings"

	"ventus/travel-enrich/internal/dateutils"
	"ventus/travel-enrich/internal/models"
)

// buildPrompt renders the classification instructions plus the candidate
// rows for the model. The contract: strict JSON array out, one object per
// input id, travel windows of ±3 days around anchors, online purchases left
// at their original classification.
func buildPrompt(candidates []models.Transaction, homeZip, homeCity string) string {
	var b strings.Builder

	b.WriteString("You are a travel-spend analyst for a rewards card. ")
	b.WriteString("You receive card transactions that were pre-screened as possible travel spend.\n\n")

	b.WriteString("HOME LOCATION:\n")
	b.WriteString("- home_zip: " + homeZip + "\n")
	if homeCity != "" {
		b.WriteString("- home_city: " + homeCity + "\n")
	}
	b.WriteString("\nTASK:\n")
	b.WriteString("1. Find anchor transactions (hotels, flights, car rentals) and group the rows into trips, using a window of 3 days before and after each anchor date.\n")
	b.WriteString("2. For every row inside a trip window, reclassify it into a travel-appropriate category:\n")
	b.WriteString("   - gas stations -> pillar \"Travel\", subcategory \"Travel Transportation\"\n")
	b.WriteString("   - restaurants -> pillar \"Dining\", subcategory \"Dining Away\"\n")
	b.WriteString("   - rideshares and taxis -> pillar \"Travel\", subcategory \"Local Transportation\"\n")
	b.WriteString("   - lodging -> pillar \"Travel\", subcategory \"Lodging\"\n")
	b.WriteString("   - flights -> pillar \"Travel\", subcategory \"Airfare\"\n")
	b.WriteString("3. Leave online or digital purchases at their original classification even when dated inside a trip window: mark them is_travel_related false.\n")
	b.WriteString("4. Rows outside every trip window are is_travel_related false.\n")

	b.WriteString("\nOUTPUT RULES:\n")
	b.WriteString("- Answer with ONLY a JSON array, no prose and no markdown fences.\n")
	b.WriteString("- Exactly one object per input row, in this shape:\n")
	b.WriteString(`  {"transaction_id": "...", "is_travel_related": true|false, "travel_period_start": "YYYY-MM-DD", "travel_period_end": "YYYY-MM-DD", "travel_destination": "...", "original_pillar": "...", "reclassified_pillar": "...", "reclassified_subcategory": "...", "reclassification_reason": "..."}`)
	b.WriteString("\n- When is_travel_related is false, include only transaction_id and is_travel_related.\n")

	b.WriteString("\nTRANSACTIONS:\n")
	for _, tx := range candidates {
		b.WriteString("- id=" + tx.TransactionID)
		b.WriteString(" date=" + dateutils.FormatDate(tx.Date))
		b.WriteString(" merchant=" + strings.ReplaceAll(tx.Merchant(), "\n", " "))
		b.WriteString(" pillar=" + tx.Pillar)
		if tx.HasZip() {
			b.WriteString(" zip=" + tx.ZipCode)
		} else {
			b.WriteString(" zip=none")
		}
		b.WriteString("\n")
	}

	return b.String()
}
