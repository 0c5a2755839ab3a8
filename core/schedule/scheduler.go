package schedule

import (
	"time"

	"github.com/visitplan/visitplan/core/geo"
	"github.com/visitplan/visitplan/core/model"
)

// Config carries the working-hour policy. The Friday budget and the buffer
// are business policy, kept as named configuration rather than literals.
type Config struct {
	MaxHoursPerDay      float64 `json:"max_hours_per_day"`
	MaxHoursFriday      float64 `json:"max_hours_friday"`
	BufferHoursPerVisit float64 `json:"buffer_hours_per_visit"`
	AverageSpeedKmh     float64 `json:"average_speed_kmh"`
}

var italianDays = [7]string{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"}

// DayName returns the localized day name for a date.
func DayName(d time.Time) string { return italianDays[d.Weekday()] }

// Scheduler walks one ordered tour and packs its visits into working days.
// Different tours are independent; a Scheduler holds no per-tour state and
// may be shared across goroutines.
type Scheduler struct {
	Cfg Config
	Cal *Calendar
}

// Schedule assigns dates, ISO week numbers and day names to the visits in
// tour order, starting at the first available date at or after start. A day
// takes visits until its hour budget (reduced on Fridays) would be exceeded;
// the overflowing visit moves to the next available day. A visit whose own
// required hours exceed even an empty day's budget is still placed, as an
// accepted overflow. The input slice is not mutated.
func (s *Scheduler) Schedule(visits []model.Visit, inspector string, start time.Time) []model.Visit {
	out := make([]model.Visit, len(visits))
	current := s.Cal.NextAvailable(start, inspector)
	dayHours := 0.0

	for i, v := range visits {
		required := v.Customer.WorkHours + s.Cfg.BufferHoursPerVisit +
			geo.TravelHours(v.KmFromPrevious, s.Cfg.AverageSpeedKmh)

		budget := s.Cfg.MaxHoursPerDay
		if current.Weekday() == time.Friday {
			budget = s.Cfg.MaxHoursFriday
		}
		if dayHours+required > budget {
			current = s.Cal.NextAvailable(current.AddDate(0, 0, 1), inspector)
			dayHours = 0
		}

		week := isoWeek(current)
		v.Date = current
		v.Week = week
		v.DayName = DayName(current)
		v.DayHours = dayHours + required
		out[i] = v

		dayHours += required
	}
	return out
}

func isoWeek(d time.Time) int {
	_, w := d.ISOWeek()
	return w
}
