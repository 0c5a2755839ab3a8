package geocode

import "fmt"

// Config configures the Nominatim geocoding client.
type Config struct {
	Enabled        bool    `json:"enabled"`
	BaseURL        string  `json:"base_url"`
	UserAgent      string  `json:"user_agent"`
	Country        string  `json:"country"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	RatePerSecond  float64 `json:"rate_per_second"`
}

// SetDefaults fills missing fields with the public Nominatim defaults. The
// default rate honors the usage policy of one request per second.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.UserAgent == "" {
		c.UserAgent = "visitplan/1.0"
	}
	if c.Country == "" {
		c.Country = "Italia"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
	if c.RatePerSecond == 0 {
		c.RatePerSecond = 1.0
	}
}

func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.BaseURL == "" {
		return fmt.Errorf("geocoding enabled without a base URL")
	}
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("invalid geocoding rate %f", c.RatePerSecond)
	}
	return nil
}
