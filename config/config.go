// Package config loads and validates the static configuration of the
// planning service: inspector roster, work-hour policy, calendar data,
// geocoding settings and observability sinks. Every component receives its
// configuration explicitly; nothing reads ambient state.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/visitplan/visitplan/infra/geocode"
	"github.com/visitplan/visitplan/infra/monitoring"
	"github.com/visitplan/visitplan/infra/planlog"
)

type Config struct {
	Work       WorkConfig        `json:"work"`
	Inspectors []InspectorConfig `json:"inspectors"`
	Calendar   CalendarConfig    `json:"calendar"`
	Geocoding  geocode.Config    `json:"geocoding"`
	Metrics    MetricsConfig     `json:"metrics"`
	PlanLog    planlog.Config    `json:"plan_log"`
	Monitoring monitoring.Config `json:"monitoring"`
	API        APIConfig         `json:"api"`
}

// Load reads the configuration file (YAML or JSON by extension) and applies
// optional environment overrides with the K_ prefix.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// The callback already rewrites "__" to the koanf delimiter, so the
	// provider gets "." or the overrides land under flat literal keys.
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration: the standard roster, Italian
// holiday calendar and work-hour policy, with geocoding disabled.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every unset section with its built-in value.
func (c *Config) SetDefaults() {
	c.Work.SetDefaults()
	if len(c.Inspectors) == 0 {
		c.Inspectors = DefaultRoster()
	}
	c.Calendar.SetDefaults()
	c.Geocoding.SetDefaults()
	c.Metrics.SetDefaults()
	c.PlanLog.SetDefaults()
	c.Monitoring.SetDefaults()
	c.API.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Work.Validate(); err != nil {
		return fmt.Errorf("work: %w", err)
	}
	if err := ValidateRoster(c.Inspectors); err != nil {
		return fmt.Errorf("inspectors: %w", err)
	}
	if err := c.Calendar.Validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if err := c.Geocoding.Validate(); err != nil {
		return fmt.Errorf("geocoding: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.PlanLog.Validate(); err != nil {
		return fmt.Errorf("plan_log: %w", err)
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}
