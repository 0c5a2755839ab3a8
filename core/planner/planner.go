// Package planner orchestrates the full planning pipeline: order matching,
// geocoding, clustering, inspector allocation, tour building and day
// scheduling, plus the independent renewal scan. Each invocation is a pure
// function of the two input tables, the static configuration and the seed.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/visitplan/visitplan/core/assign"
	"github.com/visitplan/visitplan/core/cluster"
	"github.com/visitplan/visitplan/core/geo"
	"github.com/visitplan/visitplan/core/logger"
	"github.com/visitplan/visitplan/core/match"
	"github.com/visitplan/visitplan/core/metrics"
	"github.com/visitplan/visitplan/core/model"
	"github.com/visitplan/visitplan/core/renewal"
	"github.com/visitplan/visitplan/core/schedule"
	"github.com/visitplan/visitplan/core/tour"
	"github.com/visitplan/visitplan/internal/eventbus"
)

// ErrNoMatches is returned when order matching produces an empty set: with
// nothing to schedule the run aborts instead of emitting an empty plan.
var ErrNoMatches = errors.New("no orders matched the customer master data")

// Progress is a coarse per-stage notification for operator feedback. It has
// no effect on control flow.
type Progress struct {
	Stage   int
	Stages  int
	Message string
}

const totalStages = 6

// Config carries the engine parameters.
type Config struct {
	// Clusters is the target cluster count K; clamped to the candidate count.
	Clusters int
	// Seed drives clustering initialization and inspector allocation so runs
	// are reproducible.
	Seed int64
	// RenewalWindowDays is the alert lookahead for expiring contracts.
	RenewalWindowDays int
	// GeocodeWorkers bounds lookup parallelism. The resolver enforces the
	// aggregate rate limit; values below 1 behave as 1.
	GeocodeWorkers int
	// Schedule is the working-hour policy shared by every tour.
	Schedule schedule.Config
}

// Planner wires the pipeline stages together. All fields are read-only
// during a run; the zero values of Sink, Bus and Callback are tolerated.
type Planner struct {
	Roster   []model.Inspector
	Resolver geo.Resolver
	Calendar *schedule.Calendar
	Config   Config
	Sink     metrics.Sink
	Bus      *eventbus.TypedBus[Progress]
	Log      logger.Logger
	// Now supplies the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
	// Callback, when set, receives the same progress notifications published
	// on the bus.
	Callback func(Progress)
}

// Stats are the headline counters of a run.
type Stats struct {
	TotalOrders       int     `json:"total_orders"`
	MatchedOrders     int     `json:"matched_orders"`
	UnmatchedOrders   int     `json:"unmatched_orders"`
	VisitsPlanned     int     `json:"visits_planned"`
	ActiveInspectors  int     `json:"active_inspectors"`
	WeeksRequired     int     `json:"weeks_required"`
	TotalKm           float64 `json:"total_km"`
	RenewalsToContact int     `json:"renewals_to_contact"`
}

// InspectorKPI aggregates one inspector's share of the plan.
type InspectorKPI struct {
	Inspector string  `json:"inspector"`
	Visits    int     `json:"visits"`
	Km        float64 `json:"km"`
	Hours     float64 `json:"hours"`
	Days      int     `json:"days"`
}

// Result is the complete output of one run.
type Result struct {
	RunID string
	// Seed is the pseudo-random seed the run actually used. Re-running with
	// this value in the configuration reproduces the plan.
	Seed            int64
	Plan            []model.Visit
	Renewals        []model.RenewalCandidate
	UnmatchedOrders []model.Order
	Stats           Stats
	KPIs            []InspectorKPI
	Duration        time.Duration
}

// GeneratePlan runs the whole pipeline. The start date for scheduling
// defaults to today; pass a non-zero start to plan from a different date.
func (p *Planner) GeneratePlan(ctx context.Context, customers []model.Customer, orders []model.Order, start time.Time) (*Result, error) {
	began := p.now()
	runID := uuid.NewString()
	if start.IsZero() {
		start = began
	}
	seed := p.Config.Seed
	if seed == 0 {
		seed = began.UnixNano()
	}

	p.progress(1, "matching orders against the customer master")
	candidates, unmatchedOrders := match.MatchOrders(customers, orders)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: check that customer and address match exactly between the two tables", ErrNoMatches)
	}

	p.progress(2, fmt.Sprintf("geocoding %d addresses", len(candidates)))
	if err := p.geocode(ctx, candidates); err != nil {
		return nil, err
	}

	p.progress(3, "clustering candidates geographically")
	points := make([]geo.Point, len(candidates))
	for i, c := range candidates {
		points[i] = geo.Point{Lat: c.Lat, Lon: c.Lon}
	}
	labels := cluster.Assign(points, p.clusterCount(), seed)
	for i := range candidates {
		candidates[i].ClusterID = labels[i]
	}

	p.progress(4, "allocating inspectors")
	byGroup, err := p.allocate(candidates, seed)
	if err != nil {
		return nil, err
	}

	p.progress(5, "building and scheduling tours")
	plan := p.buildTours(byGroup, start)

	p.progress(6, "selecting contract renewals")
	renewals := renewal.Select(customers, p.Config.RenewalWindowDays, began)

	res := &Result{
		RunID:           runID,
		Seed:            seed,
		Plan:            plan,
		Renewals:        renewals,
		UnmatchedOrders: unmatchedOrders,
		Duration:        p.now().Sub(began),
	}
	res.Stats = p.stats(len(orders), len(candidates), len(unmatchedOrders), plan, renewals)
	res.KPIs = computeKPIs(plan)
	p.record(res, began)
	return res, nil
}

type groupKey struct {
	inspector string
	cluster   int
}

// allocate assigns an inspector to every candidate and groups candidates by
// (inspector, cluster). Candidates are walked in input order so the seeded
// allocation is reproducible.
func (p *Planner) allocate(candidates []model.VisitCandidate, seed int64) (map[groupKey][]model.VisitCandidate, error) {
	alloc := assign.New(p.Roster, seed)
	groups := make(map[groupKey][]model.VisitCandidate)
	for _, c := range candidates {
		ins, err := alloc.Assign(c.Customer.Region)
		if err != nil {
			return nil, fmt.Errorf("allocating inspector: %w", err)
		}
		k := groupKey{inspector: ins.Name, cluster: c.ClusterID}
		groups[k] = append(groups[k], c)
	}
	return groups, nil
}

// buildTours routes and schedules every (inspector, cluster) group. Groups
// are independent, so they run concurrently. Map iteration order is
// randomized, so the keys are sorted up front and the final sort breaks ties
// down to the zone label, giving the same plan ordering for the same inputs
// and seed on every run.
func (p *Planner) buildTours(groups map[groupKey][]model.VisitCandidate, start time.Time) []model.Visit {
	inspectors := make(map[string]model.Inspector, len(p.Roster))
	for _, ins := range p.Roster {
		inspectors[ins.Name] = ins
	}
	sched := &schedule.Scheduler{Cfg: p.Config.Schedule, Cal: p.Calendar}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].inspector != keys[b].inspector {
			return keys[a].inspector < keys[b].inspector
		}
		return keys[a].cluster < keys[b].cluster
	})

	results := make([][]model.Visit, len(keys))
	var wg sync.WaitGroup
	for i, k := range keys {
		wg.Add(1)
		go func(slot int, k groupKey, cands []model.VisitCandidate) {
			defer wg.Done()
			t := tour.Build(inspectors[k.inspector], k.cluster, cands)
			results[slot] = sched.Schedule(t.Visits, k.inspector, start)
		}(i, k, groups[k])
	}
	wg.Wait()

	var plan []model.Visit
	for _, vs := range results {
		plan = append(plan, vs...)
	}
	sort.SliceStable(plan, func(a, b int) bool {
		if plan[a].Inspector != plan[b].Inspector {
			return plan[a].Inspector < plan[b].Inspector
		}
		if !plan[a].Date.Equal(plan[b].Date) {
			return plan[a].Date.Before(plan[b].Date)
		}
		// Within the same zone the stable sort keeps the tour sequence, so
		// KmFromPrevious still chains stop to stop.
		return plan[a].Zone < plan[b].Zone
	})
	return plan
}

// geocode resolves coordinates for every candidate with bounded parallelism.
// Failures never surface here: the resolver is expected to fall back to
// regional centroids.
func (p *Planner) geocode(ctx context.Context, candidates []model.VisitCandidate) error {
	workers := p.Config.GeocodeWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var firstErr error
	var mu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c := &candidates[i]
				pt, err := p.Resolver.Resolve(ctx, c.Customer.PostalCode, c.Customer.City, c.Customer.Region)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				c.Lat, c.Lon = pt.Lat, pt.Lon
			}
		}()
	}

	for i := range candidates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()
	return firstErr
}

func (p *Planner) clusterCount() int {
	if p.Config.Clusters < 1 {
		return 1
	}
	return p.Config.Clusters
}

func (p *Planner) stats(totalOrders, matched, unmatched int, plan []model.Visit, renewals []model.RenewalCandidate) Stats {
	s := Stats{
		TotalOrders:       totalOrders,
		MatchedOrders:     matched,
		UnmatchedOrders:   unmatched,
		VisitsPlanned:     len(plan),
		RenewalsToContact: len(renewals),
	}
	inspectors := map[string]struct{}{}
	weeks := map[int]struct{}{}
	for _, v := range plan {
		inspectors[v.Inspector] = struct{}{}
		weeks[v.Week] = struct{}{}
		s.TotalKm += v.KmFromPrevious
	}
	s.ActiveInspectors = len(inspectors)
	s.WeeksRequired = len(weeks)
	return s
}

func computeKPIs(plan []model.Visit) []InspectorKPI {
	type agg struct {
		visits int
		km     float64
		hours  float64
		days   map[string]struct{}
	}
	byInspector := map[string]*agg{}
	for _, v := range plan {
		a, ok := byInspector[v.Inspector]
		if !ok {
			a = &agg{days: map[string]struct{}{}}
			byInspector[v.Inspector] = a
		}
		a.visits++
		a.km += v.KmFromPrevious
		a.hours += v.Customer.WorkHours
		a.days[v.Date.Format("2006-01-02")] = struct{}{}
	}
	kpis := make([]InspectorKPI, 0, len(byInspector))
	for name, a := range byInspector {
		kpis = append(kpis, InspectorKPI{
			Inspector: name,
			Visits:    a.visits,
			Km:        a.km,
			Hours:     a.hours,
			Days:      len(a.days),
		})
	}
	sort.Slice(kpis, func(i, j int) bool { return kpis[i].Inspector < kpis[j].Inspector })
	return kpis
}

func (p *Planner) record(res *Result, began time.Time) {
	if p.Sink == nil {
		return
	}
	ev := metrics.PlanEvent{
		RunID:           res.RunID,
		Time:            began,
		Duration:        res.Duration,
		TotalOrders:     res.Stats.TotalOrders,
		MatchedOrders:   res.Stats.MatchedOrders,
		UnmatchedOrders: res.Stats.UnmatchedOrders,
		VisitsPlanned:   res.Stats.VisitsPlanned,
		Inspectors:      res.Stats.ActiveInspectors,
		Weeks:           res.Stats.WeeksRequired,
		TotalKm:         res.Stats.TotalKm,
		Renewals:        res.Stats.RenewalsToContact,
	}
	if err := p.Sink.RecordPlan(ev); err != nil {
		p.logWarn("recording plan event: %v", err)
	}
	for _, k := range res.KPIs {
		lev := metrics.InspectorLoadEvent{
			RunID:     res.RunID,
			Inspector: k.Inspector,
			Visits:    k.Visits,
			Km:        k.Km,
			Hours:     k.Hours,
			Days:      k.Days,
			Time:      began,
		}
		if err := p.Sink.RecordInspectorLoad(lev); err != nil {
			p.logWarn("recording inspector load: %v", err)
		}
	}
}

func (p *Planner) progress(stage int, msg string) {
	ev := Progress{Stage: stage, Stages: totalStages, Message: msg}
	if p.Bus != nil {
		p.Bus.Publish(ev)
	}
	if p.Callback != nil {
		p.Callback(ev)
	}
	if p.Log != nil {
		p.Log.Infof("stage %d/%d: %s", stage, totalStages, msg)
	}
}

func (p *Planner) logWarn(format string, args ...any) {
	if p.Log != nil {
		p.Log.Warnf(format, args...)
	}
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
