// Package schedule assigns calendar dates to ordered tours under
// working-hour budgets and calendar availability.
package schedule

import "time"

const dateLayout = "2006-01-02"

// maxLookaheadDays bounds the next-available-date search. Past the bound the
// original candidate date is returned as a degraded fallback instead of
// looping forever.
const maxLookaheadDays = 365

// Vacation is a closed date interval during which an inspector is off work.
type Vacation struct {
	Inspector string
	Start     time.Time
	End       time.Time
	Kind      string
}

// Contains reports whether d falls inside the vacation interval.
func (v Vacation) Contains(d time.Time) bool {
	day := truncateDay(d)
	return !day.Before(truncateDay(v.Start)) && !day.After(truncateDay(v.End))
}

// Calendar knows which dates are workable: weekdays that are neither
// holidays nor inside a vacation interval of the inspector at hand.
type Calendar struct {
	holidays  map[string]struct{}
	vacations map[string][]Vacation
}

// NewCalendar builds a calendar from holiday dates (in "2006-01-02" form) and
// per-inspector vacations. Unparseable holiday strings are ignored.
func NewCalendar(holidays []string, vacations []Vacation) *Calendar {
	c := &Calendar{
		holidays:  make(map[string]struct{}, len(holidays)),
		vacations: make(map[string][]Vacation),
	}
	for _, h := range holidays {
		if _, err := time.Parse(dateLayout, h); err == nil {
			c.holidays[h] = struct{}{}
		}
	}
	for _, v := range vacations {
		c.vacations[v.Inspector] = append(c.vacations[v.Inspector], v)
	}
	return c
}

// IsWeekend reports whether the date is a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether the date is in the holiday table.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[d.Format(dateLayout)]
	return ok
}

// Available reports whether the inspector can work on the date, with the
// reason when not.
func (c *Calendar) Available(d time.Time, inspector string) (bool, string) {
	if IsWeekend(d) {
		return false, "weekend"
	}
	if c.IsHoliday(d) {
		return false, "holiday"
	}
	for _, v := range c.vacations[inspector] {
		if v.Contains(d) {
			reason := v.Kind
			if reason == "" {
				reason = "vacation"
			}
			return false, reason
		}
	}
	return true, ""
}

// NextAvailable returns the first workable date at or after from, searching
// at most maxLookaheadDays ahead. When the search exhausts the bound the
// starting date is returned unchanged.
func (c *Calendar) NextAvailable(from time.Time, inspector string) time.Time {
	d := truncateDay(from)
	for i := 0; i < maxLookaheadDays; i++ {
		if ok, _ := c.Available(d, inspector); ok {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return truncateDay(from)
}

func truncateDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
