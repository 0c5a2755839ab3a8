package metrics

import coremetrics "github.com/visitplan/visitplan/core/metrics"

// MultiSink fans planning events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPlan(ev coremetrics.PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordGeocode forwards geocoding events.
func (m *MultiSink) RecordGeocode(ev coremetrics.GeocodeEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordGeocode(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordInspectorLoad forwards workload events.
func (m *MultiSink) RecordInspectorLoad(ev coremetrics.InspectorLoadEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordInspectorLoad(ev); err != nil {
			return err
		}
	}
	return nil
}
