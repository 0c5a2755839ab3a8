package config

import "fmt"

// MetricsConfig selects which metric sinks the service exposes.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == 0 {
		c.PrometheusPort = 2112
	}
}

func (c MetricsConfig) Validate() error {
	if c.PrometheusEnabled && (c.PrometheusPort <= 0 || c.PrometheusPort > 65535) {
		return fmt.Errorf("invalid prometheus port %d", c.PrometheusPort)
	}
	if c.InfluxEnabled {
		if c.InfluxURL == "" {
			return fmt.Errorf("influx enabled without a URL")
		}
		if c.InfluxBucket == "" {
			return fmt.Errorf("influx enabled without a bucket")
		}
	}
	return nil
}
