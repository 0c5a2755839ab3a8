package metrics

import (
	"github.com/visitplan/visitplan/config"
	coremetrics "github.com/visitplan/visitplan/core/metrics"
)

// NewFromConfig builds the sink stack described by cfg. Disabled backends are
// skipped; with none enabled the returned sink discards every event.
func NewFromConfig(cfg config.MetricsConfig) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.PrometheusEnabled {
		prom, err := NewPromSink()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, prom)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
