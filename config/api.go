package config

import "fmt"

// APIConfig configures the read-only HTTP API over run history and KPIs.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port"`
	Token   string `json:"token"`
}

func (c *APIConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c APIConfig) Validate() error {
	if c.Enabled && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("invalid api port %d", c.Port)
	}
	return nil
}
