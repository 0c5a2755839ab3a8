// Package app assembles the planning service from its configuration:
// resolver chain, calendar, metric sinks, run log and the planner itself.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/visitplan/visitplan/api/inspectors"
	"github.com/visitplan/visitplan/api/runs"
	"github.com/visitplan/visitplan/config"
	"github.com/visitplan/visitplan/core/geo"
	coremetrics "github.com/visitplan/visitplan/core/metrics"
	"github.com/visitplan/visitplan/core/model"
	"github.com/visitplan/visitplan/core/monitoring"
	"github.com/visitplan/visitplan/core/planner"
	"github.com/visitplan/visitplan/infra/geocode"
	"github.com/visitplan/visitplan/infra/input"
	"github.com/visitplan/visitplan/infra/kpi"
	"github.com/visitplan/visitplan/infra/logger"
	"github.com/visitplan/visitplan/infra/metrics"
	inframon "github.com/visitplan/visitplan/infra/monitoring"
	"github.com/visitplan/visitplan/infra/planlog"
	"github.com/visitplan/visitplan/internal/eventbus"
	"github.com/visitplan/visitplan/pkg/export"
)

// Service orchestrates the planner and its infrastructure adapters.
type Service struct {
	Planner *planner.Planner
	Bus     *eventbus.TypedBus[planner.Progress]

	cfg      *config.Config
	resolver *geo.FallbackResolver
	sink     coremetrics.Sink
	runLog   planlog.Store
	kpiLog   *kpi.SQLiteStore
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	monitor, err := inframon.NewSentryMonitor(cfg.Monitoring)
	if err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}
	monitoring.Init(monitor)

	sink, err := metrics.NewFromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	var inner geo.Resolver
	if cfg.Geocoding.Enabled {
		inner = geocode.NewNominatimClient(cfg.Geocoding)
	}
	resolver := geo.NewFallbackResolver(inner, config.RegionalCentroids(), logger.New("geocoder"))
	resolver.OnResult = func(region string, fallback bool) {
		_ = sink.RecordGeocode(coremetrics.GeocodeEvent{Region: region, Fallback: fallback, Time: time.Now()})
	}

	var runLog planlog.Store
	var kpiLog *kpi.SQLiteStore
	if cfg.PlanLog.Enabled {
		runLog, err = planlog.NewStore(cfg.PlanLog)
		if err != nil {
			return nil, fmt.Errorf("plan log: %w", err)
		}
		if cfg.PlanLog.Backend == "sqlite" {
			// KPI history shares the run-log database.
			kpiLog, err = kpi.NewSQLiteStore(cfg.PlanLog.Path)
			if err != nil {
				return nil, fmt.Errorf("kpi store: %w", err)
			}
		}
	}

	bus := eventbus.NewTyped[planner.Progress]()
	p := &planner.Planner{
		Roster:   config.Roster(cfg.Inspectors),
		Resolver: resolver,
		Calendar: cfg.Calendar.Calendar(),
		Config: planner.Config{
			Clusters:          cfg.Work.DefaultClusters,
			Seed:              cfg.Work.Seed,
			RenewalWindowDays: cfg.Work.RenewalAlertDays,
			GeocodeWorkers:    cfg.Work.GeocodeWorkers,
			Schedule:          cfg.Work.Schedule(),
		},
		Sink: sink,
		Bus:  bus,
		Log:  logger.New("planner"),
	}

	return &Service{
		Planner:  p,
		Bus:      bus,
		cfg:      cfg,
		resolver: resolver,
		sink:     sink,
		runLog:   runLog,
		kpiLog:   kpiLog,
		log:      logg,
	}, nil
}

// StartMetricsServer exposes the Prometheus endpoint when enabled. It blocks
// until ctx is canceled.
func (s *Service) StartMetricsServer(ctx context.Context) error {
	if !s.cfg.Metrics.PrometheusEnabled {
		<-ctx.Done()
		return nil
	}
	return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort)
}

// ServeAPI exposes the run log and KPI history over HTTP until ctx is
// canceled. With the API disabled it simply blocks.
func (s *Service) ServeAPI(ctx context.Context) error {
	if !s.cfg.API.Enabled {
		<-ctx.Done()
		return nil
	}
	mux := http.NewServeMux()
	if s.runLog != nil {
		mux.Handle("/api/runs", runs.NewHandler(s.runLog, s.cfg.API.Token))
	}
	if s.kpiLog != nil {
		mux.Handle("/api/inspectors/", inspectors.NewKPIHandler(s.kpiLog))
	}
	srv := &http.Server{Addr: fmt.Sprintf(":%d", s.cfg.API.Port), Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	s.log.Infof("api listening on :%d", s.cfg.API.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// GeneratePlan runs the planner and persists the run record.
func (s *Service) GeneratePlan(ctx context.Context, customers []model.Customer, orders []model.Order, start time.Time) (*planner.Result, error) {
	fallbacksBefore := s.resolver.Fallbacks()
	res, err := s.Planner.GeneratePlan(ctx, customers, orders, start)
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"stage": "plan"})
		return nil, err
	}

	if s.runLog != nil {
		rec := planlog.RunRecord{
			RunID:            res.RunID,
			Timestamp:        time.Now(),
			Customers:        len(customers),
			Orders:           len(orders),
			Matched:          res.Stats.MatchedOrders,
			Unmatched:        res.Stats.UnmatchedOrders,
			Visits:           res.Stats.VisitsPlanned,
			Renewals:         res.Stats.RenewalsToContact,
			GeocodeFallbacks: int(s.resolver.Fallbacks() - fallbacksBefore),
			VisitsByName:     visitsByInspector(res.Plan),
			DurationMs:       res.Duration.Milliseconds(),
		}
		if err := s.runLog.Append(ctx, rec); err != nil {
			s.log.Errorf("append run record: %v", err)
		}
	}
	if s.kpiLog != nil {
		if err := s.kpiLog.Add(res.RunID, time.Now(), res.KPIs); err != nil {
			s.log.Errorf("store kpi history: %v", err)
		}
	}
	return res, nil
}

// GeneratePlanFromFiles loads the two CSV tables and runs the planner.
func (s *Service) GeneratePlanFromFiles(ctx context.Context, customersPath, ordersPath string, start time.Time) (*planner.Result, error) {
	customers, err := input.LoadCustomers(customersPath)
	if err != nil {
		return nil, err
	}
	orders, err := input.LoadOrders(ordersPath)
	if err != nil {
		return nil, err
	}
	return s.GeneratePlan(ctx, customers, orders, start)
}

// Export writes the plan and the renewal list to outDir in both CSV and JSON.
func (s *Service) Export(res *planner.Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	files := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"planning_tour.csv", func(f *os.File) error { return export.WriteVisitsCSV(f, res.Plan) }},
		{"planning_tour.json", func(f *os.File) error { return export.WriteVisitsJSON(f, res.Plan) }},
		{"rinnovi.csv", func(f *os.File) error { return export.WriteRenewalsCSV(f, res.Renewals) }},
		{"rinnovi.json", func(f *os.File) error { return export.WriteRenewalsJSON(f, res.Renewals) }},
	}
	for _, out := range files {
		f, err := os.Create(filepath.Join(outDir, out.name))
		if err != nil {
			return err
		}
		if err := out.write(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", out.name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	s.log.Infof("exported plan to %s", outDir)
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Bus.Close()
	monitoring.Flush(2 * time.Second)
	var first error
	if s.kpiLog != nil {
		if err := s.kpiLog.Close(); err != nil {
			first = err
		}
	}
	if s.runLog != nil {
		if err := s.runLog.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func visitsByInspector(plan []model.Visit) map[string]int {
	out := make(map[string]int)
	for _, v := range plan {
		out[v.Inspector]++
	}
	return out
}
