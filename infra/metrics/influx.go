package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/visitplan/visitplan/core/metrics"
	"github.com/visitplan/visitplan/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes the run summary as a single point.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_run").
		AddTag("run_id", ev.RunID).
		AddTag("component", "planner").
		AddField("duration_ms", ev.Duration.Milliseconds()).
		AddField("orders_total", ev.TotalOrders).
		AddField("orders_matched", ev.MatchedOrders).
		AddField("orders_unmatched", ev.UnmatchedOrders).
		AddField("visits_planned", ev.VisitsPlanned).
		AddField("inspectors", ev.Inspectors).
		AddField("weeks", ev.Weeks).
		AddField("total_km", round3(ev.TotalKm)).
		AddField("renewals", ev.Renewals).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordGeocode writes the outcome of one address lookup.
func (s *InfluxSink) RecordGeocode(ev coremetrics.GeocodeEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("geocode_lookup").
		AddTag("region", ev.Region).
		AddTag("fallback", strconv.FormatBool(ev.Fallback)).
		AddTag("component", "geocoder").
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordInspectorLoad writes the workload of one inspector for a run.
func (s *InfluxSink) RecordInspectorLoad(ev coremetrics.InspectorLoadEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("inspector_load").
		AddTag("run_id", ev.RunID).
		AddTag("inspector", ev.Inspector).
		AddTag("component", "planner").
		AddField("visits", ev.Visits).
		AddField("km", round3(ev.Km)).
		AddField("hours", round3(ev.Hours)).
		AddField("days", ev.Days).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
