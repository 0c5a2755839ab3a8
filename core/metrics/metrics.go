// Package metrics defines the observability events emitted by the planning
// engine and the sink interfaces that record them.
package metrics

import "time"

// PlanEvent summarizes one completed planning run.
type PlanEvent struct {
	RunID           string
	Time            time.Time
	Duration        time.Duration
	TotalOrders     int
	MatchedOrders   int
	UnmatchedOrders int
	VisitsPlanned   int
	Inspectors      int
	Weeks           int
	TotalKm         float64
	Renewals        int
}

// GeocodeEvent records the outcome of one address lookup.
type GeocodeEvent struct {
	Region   string
	Fallback bool
	Time     time.Time
}

// InspectorLoadEvent is the per-inspector workload of one run.
type InspectorLoadEvent struct {
	RunID     string
	Inspector string
	Visits    int
	Km        float64
	Hours     float64
	Days      int
	Time      time.Time
}

// Sink records planning events for observability purposes. Implementations
// must tolerate concurrent calls.
type Sink interface {
	RecordPlan(ev PlanEvent) error
	RecordGeocode(ev GeocodeEvent) error
	RecordInspectorLoad(ev InspectorLoadEvent) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error                   { return nil }
func (NopSink) RecordGeocode(GeocodeEvent) error             { return nil }
func (NopSink) RecordInspectorLoad(InspectorLoadEvent) error { return nil }
