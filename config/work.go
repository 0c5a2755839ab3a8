package config

import (
	"fmt"

	"github.com/visitplan/visitplan/core/schedule"
)

// WorkConfig groups the business-policy parameters of the engine. The Friday
// budget and the per-visit buffer come from the domain owner; they are
// configuration, never embedded literals.
type WorkConfig struct {
	MaxHoursPerDay      float64 `json:"max_hours_per_day"`
	MaxHoursFriday      float64 `json:"max_hours_friday"`
	BufferHoursPerVisit float64 `json:"buffer_hours_per_visit"`
	AverageSpeedKmh     float64 `json:"average_speed_kmh"`
	DefaultClusters     int     `json:"default_clusters"`
	RenewalAlertDays    int     `json:"renewal_alert_days"`
	GeocodeWorkers      int     `json:"geocode_workers"`
	// Seed drives clustering and allocation. 0 derives a fresh seed from the
	// run's start time; the value used is reported on the result.
	Seed int64 `json:"seed"`
}

// SetDefaults applies the standard work parameters.
func (c *WorkConfig) SetDefaults() {
	if c.MaxHoursPerDay == 0 {
		c.MaxHoursPerDay = 8.0
	}
	if c.MaxHoursFriday == 0 {
		c.MaxHoursFriday = 6.5 // return by 17:30
	}
	if c.BufferHoursPerVisit == 0 {
		c.BufferHoursPerVisit = 0.5
	}
	if c.AverageSpeedKmh == 0 {
		c.AverageSpeedKmh = 70
	}
	if c.DefaultClusters == 0 {
		c.DefaultClusters = 8
	}
	if c.RenewalAlertDays == 0 {
		c.RenewalAlertDays = 90
	}
	if c.GeocodeWorkers == 0 {
		c.GeocodeWorkers = 4
	}
}

// Validate checks the work parameters are coherent.
func (c WorkConfig) Validate() error {
	if c.MaxHoursPerDay <= 0 {
		return fmt.Errorf("max_hours_per_day must be positive")
	}
	if c.MaxHoursFriday <= 0 || c.MaxHoursFriday > c.MaxHoursPerDay {
		return fmt.Errorf("max_hours_friday must be positive and not exceed max_hours_per_day")
	}
	if c.BufferHoursPerVisit < 0 {
		return fmt.Errorf("buffer_hours_per_visit must not be negative")
	}
	if c.AverageSpeedKmh <= 0 {
		return fmt.Errorf("average_speed_kmh must be positive")
	}
	if c.DefaultClusters < 1 {
		return fmt.Errorf("default_clusters must be at least 1")
	}
	if c.RenewalAlertDays < 0 {
		return fmt.Errorf("renewal_alert_days must not be negative")
	}
	return nil
}

// Schedule converts the work parameters into the scheduler's config.
func (c WorkConfig) Schedule() schedule.Config {
	return schedule.Config{
		MaxHoursPerDay:      c.MaxHoursPerDay,
		MaxHoursFriday:      c.MaxHoursFriday,
		BufferHoursPerVisit: c.BufferHoursPerVisit,
		AverageSpeedKmh:     c.AverageSpeedKmh,
	}
}
