// Package dateutils provides the date parsing and distance helpers used by
// the import layer and the temporal clustering pass.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the canonical wire format for transaction dates.
const LayoutISO = "2006-01-02"

// acceptedLayouts lists the formats tolerated on import, most common first.
var acceptedLayouts = []string{
	LayoutISO,
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
}

// ParseDate parses a calendar date, trying each accepted layout in order.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// FormatDate renders a date in the canonical ISO layout.
func FormatDate(t time.Time) string {
	return t.Format(LayoutISO)
}

// DaysBetween returns the absolute whole-day distance between two calendar
// dates, ignoring any time-of-day component.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
