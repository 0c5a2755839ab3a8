package config

import (
	"fmt"
	"time"

	"github.com/visitplan/visitplan/core/geo"
	"github.com/visitplan/visitplan/core/schedule"
)

// CalendarConfig holds working-calendar inputs: extra holidays beyond the
// national table and per-inspector vacation intervals.
type CalendarConfig struct {
	// CustomHolidays are extra non-working dates in "2006-01-02" form.
	CustomHolidays []string         `json:"custom_holidays"`
	Vacations      []VacationConfig `json:"vacations"`
}

// VacationConfig is a closed date interval for one inspector.
type VacationConfig struct {
	Inspector string `json:"inspector"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Kind      string `json:"kind"`
}

func (c *CalendarConfig) SetDefaults() {}

// Validate checks all dates parse and intervals are ordered.
func (c CalendarConfig) Validate() error {
	for _, h := range c.CustomHolidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return fmt.Errorf("custom holiday %q: %w", h, err)
		}
	}
	for _, v := range c.Vacations {
		start, err := time.Parse("2006-01-02", v.Start)
		if err != nil {
			return fmt.Errorf("vacation start %q: %w", v.Start, err)
		}
		end, err := time.Parse("2006-01-02", v.End)
		if err != nil {
			return fmt.Errorf("vacation end %q: %w", v.End, err)
		}
		if end.Before(start) {
			return fmt.Errorf("vacation for %s ends before it starts", v.Inspector)
		}
		if v.Inspector == "" {
			return fmt.Errorf("vacation without an inspector")
		}
	}
	return nil
}

// Calendar builds the schedule calendar: national holidays plus the custom
// ones, and the configured vacations.
func (c CalendarConfig) Calendar() *schedule.Calendar {
	holidays := append(append([]string(nil), NationalHolidays()...), c.CustomHolidays...)
	var vacations []schedule.Vacation
	for _, v := range c.Vacations {
		start, err1 := time.Parse("2006-01-02", v.Start)
		end, err2 := time.Parse("2006-01-02", v.End)
		if err1 != nil || err2 != nil {
			continue
		}
		vacations = append(vacations, schedule.Vacation{
			Inspector: v.Inspector,
			Start:     start,
			End:       end,
			Kind:      v.Kind,
		})
	}
	return schedule.NewCalendar(holidays, vacations)
}

// NationalHolidays returns the Italian national holidays for 2025-2026.
func NationalHolidays() []string {
	return []string{
		"2025-01-01", // Capodanno
		"2025-01-06", // Epifania
		"2025-04-21", // Lunedì dell'Angelo
		"2025-04-25", // Festa della Liberazione
		"2025-05-01", // Festa dei Lavoratori
		"2025-06-02", // Festa della Repubblica
		"2025-08-15", // Ferragosto
		"2025-11-01", // Tutti i Santi
		"2025-12-08", // Immacolata Concezione
		"2025-12-25", // Natale
		"2025-12-26", // Santo Stefano
		"2026-01-01",
		"2026-01-06",
		"2026-04-06",
		"2026-04-25",
		"2026-05-01",
		"2026-06-02",
		"2026-08-15",
		"2026-11-01",
		"2026-12-08",
		"2026-12-25",
		"2026-12-26",
	}
}

// RegionalCentroids returns the fallback coordinate per Italian region, used
// when geocoding fails.
func RegionalCentroids() map[string]geo.Point {
	return map[string]geo.Point{
		"Abruzzo":               {Lat: 42.35, Lon: 13.40},
		"Basilicata":            {Lat: 40.64, Lon: 15.80},
		"Calabria":              {Lat: 39.31, Lon: 16.25},
		"Campania":              {Lat: 40.83, Lon: 14.25},
		"Emilia-Romagna":        {Lat: 44.49, Lon: 11.34},
		"Friuli-Venezia Giulia": {Lat: 45.64, Lon: 13.78},
		"Lazio":                 {Lat: 41.90, Lon: 12.50},
		"Liguria":               {Lat: 44.41, Lon: 8.93},
		"Lombardia":             {Lat: 45.46, Lon: 9.19},
		"Marche":                {Lat: 43.62, Lon: 13.52},
		"Molise":                {Lat: 41.56, Lon: 14.66},
		"Piemonte":              {Lat: 45.07, Lon: 7.69},
		"Puglia":                {Lat: 41.13, Lon: 16.87},
		"Sardegna":              {Lat: 40.12, Lon: 9.01},
		"Sicilia":               {Lat: 38.12, Lon: 13.36},
		"Toscana":               {Lat: 43.77, Lon: 11.25},
		"Trentino-Alto Adige":   {Lat: 46.07, Lon: 11.12},
		"Umbria":                {Lat: 43.11, Lon: 12.39},
		"Valle d'Aosta":         {Lat: 45.74, Lon: 7.43},
		"Veneto":                {Lat: 45.44, Lon: 12.32},
	}
}
