package planlog

import (
	"context"
	"fmt"
	"time"
)

// RunRecord captures one plan generation run and its outcome.
type RunRecord struct {
	RunID            string         `json:"run_id"`
	Timestamp        time.Time      `json:"timestamp"`
	Customers        int            `json:"customers"`
	Orders           int            `json:"orders"`
	Matched          int            `json:"matched"`
	Unmatched        int            `json:"unmatched"`
	Visits           int            `json:"visits"`
	Renewals         int            `json:"renewals"`
	GeocodeFallbacks int            `json:"geocode_fallbacks"`
	VisitsByName     map[string]int `json:"visits_by_inspector"`
	DurationMs       int64          `json:"duration_ms"`
}

// RunQuery defines filters for retrieving run records.
type RunQuery struct {
	Start     time.Time
	End       time.Time
	RunID     string
	Inspector string
}

// Store persists RunRecords and supports querying past runs.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q RunQuery) ([]RunRecord, error)
	Close() error
}

// Config selects the run log backend.
type Config struct {
	Enabled bool   `json:"enabled"`
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "plan_runs.jsonl"
	}
}

func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Backend {
	case "jsonl", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown plan log backend %q", c.Backend)
	}
}

// NewStore builds the store described by cfg.
func NewStore(cfg Config) (Store, error) {
	cfg.SetDefaults()
	switch cfg.Backend {
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown plan log backend %q", cfg.Backend)
	}
}

// matches reports whether rec satisfies the non-time filters of q.
func matches(rec RunRecord, q RunQuery) bool {
	if q.RunID != "" && rec.RunID != q.RunID {
		return false
	}
	if q.Inspector != "" {
		if _, ok := rec.VisitsByName[q.Inspector]; !ok {
			return false
		}
	}
	return true
}
