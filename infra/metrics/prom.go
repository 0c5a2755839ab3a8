package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/visitplan/visitplan/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	runs     prometheus.Counter
	duration prometheus.Histogram
	visits   *prometheus.CounterVec
	geocodes *prometheus.CounterVec
	load     *prometheus.GaugeVec
	km       *prometheus.GaugeVec
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
// The HTTP exposition server is started separately by the service.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_runs_total",
		Help: "Total number of planning runs",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_duration_seconds",
		Help:    "Time spent generating a visit plan",
		Buckets: prometheus.DefBuckets,
	})
	visits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_visits_total",
		Help: "Visits planned per run outcome",
	}, []string{"matched"})
	geocodes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_lookups_total",
		Help: "Address lookups by region and fallback outcome",
	}, []string{"region", "fallback"})
	load := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "inspector_visits",
		Help: "Visits assigned to each inspector in the latest run",
	}, []string{"inspector"})
	km := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "inspector_distance_km",
		Help: "Kilometers driven by each inspector in the latest run",
	}, []string{"inspector"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(visits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			visits = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(geocodes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			geocodes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(load); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			load = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(km); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			km = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		runs:     runs,
		duration: duration,
		visits:   visits,
		geocodes: geocodes,
		load:     load,
		km:       km,
	}, nil
}

// RecordPlan increments run counters and observes the run duration.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.runs.Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.visits.WithLabelValues("true").Add(float64(ev.VisitsPlanned))
	s.visits.WithLabelValues("false").Add(float64(ev.UnmatchedOrders))
	return nil
}

// RecordGeocode counts one lookup by region and outcome.
func (s *PromSink) RecordGeocode(ev coremetrics.GeocodeEvent) error {
	s.geocodes.WithLabelValues(ev.Region, strconv.FormatBool(ev.Fallback)).Inc()
	return nil
}

// RecordInspectorLoad sets the per-inspector gauges for the latest run.
func (s *PromSink) RecordInspectorLoad(ev coremetrics.InspectorLoadEvent) error {
	s.load.WithLabelValues(ev.Inspector).Set(float64(ev.Visits))
	s.km.WithLabelValues(ev.Inspector).Set(ev.Km)
	return nil
}
