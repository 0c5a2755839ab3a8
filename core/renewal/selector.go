// Package renewal scans the customer master table for contracts expiring
// inside the alert window and builds a priority-sorted contact list. It runs
// independently of the visit planning pipeline.
package renewal

import (
	"sort"
	"time"

	"github.com/visitplan/visitplan/core/model"
)

// dateLayouts are tried in order when parsing reference dates from the
// master table. Rows whose date parses with none of them are skipped.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Select returns every customer whose reference date falls inside
// [today, today+windowDays], sorted ascending by days to expiry (most urgent
// first). Contact-tracking fields start empty. Unparseable dates are skipped
// silently, not treated as errors.
func Select(customers []model.Customer, windowDays int, now time.Time) []model.RenewalCandidate {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	limit := today.AddDate(0, 0, windowDays)

	var out []model.RenewalCandidate
	for _, c := range customers {
		expiry, ok := parseDate(c.ReferenceDate, now.Location())
		if !ok {
			continue
		}
		if expiry.Before(today) || expiry.After(limit) {
			continue
		}
		out = append(out, model.RenewalCandidate{
			Customer:     c,
			ExpiryDate:   expiry,
			DaysToExpiry: int(expiry.Sub(today).Hours() / 24),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysToExpiry < out[j].DaysToExpiry
	})
	return out
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}
