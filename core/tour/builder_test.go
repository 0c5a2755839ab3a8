package tour

import (
	"math"
	"testing"

	"github.com/visitplan/visitplan/core/geo"
	"github.com/visitplan/visitplan/core/model"
)

var base = model.Inspector{Name: "Adrian", BaseLat: 46.08, BaseLon: 13.18}

func cand(id string, lat, lon float64) model.VisitCandidate {
	return model.VisitCandidate{
		Order: model.Order{ID: id},
		Lat:   lat,
		Lon:   lon,
	}
}

func TestBuildEmptyGroup(t *testing.T) {
	got := Build(base, 0, nil)
	if len(got.Visits) != 0 || got.TotalKm != 0 {
		t.Fatalf("empty group must yield an empty tour, got %+v", got)
	}
}

func TestBuildSingleCandidate(t *testing.T) {
	c := cand("O1", 45.46, 9.19)
	got := Build(base, 2, []model.VisitCandidate{c})
	if len(got.Visits) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(got.Visits))
	}
	want := geo.HaversineKm(
		geo.Point{Lat: base.BaseLat, Lon: base.BaseLon},
		geo.Point{Lat: c.Lat, Lon: c.Lon},
	)
	if math.Abs(got.Visits[0].KmFromPrevious-want) > 1e-9 {
		t.Fatalf("first stop distance must be measured from home base: got %v want %v",
			got.Visits[0].KmFromPrevious, want)
	}
	if got.Visits[0].Zone != "Cluster_2_Adrian" {
		t.Errorf("unexpected zone label %q", got.Visits[0].Zone)
	}
	if got.Visits[0].Status != model.StatusPending {
		t.Errorf("visits must default to pending confirmation")
	}
}

func TestBuildVisitsEachCandidateOnce(t *testing.T) {
	cands := []model.VisitCandidate{
		cand("O1", 45.46, 9.19),
		cand("O2", 45.07, 7.69),
		cand("O3", 44.49, 11.34),
		cand("O4", 41.90, 12.50),
	}
	got := Build(base, 0, cands)
	if len(got.Visits) != len(cands) {
		t.Fatalf("tour length must equal input length: %d vs %d", len(got.Visits), len(cands))
	}
	seen := map[string]bool{}
	for _, v := range got.Visits {
		if seen[v.Order.ID] {
			t.Fatalf("candidate %s visited twice", v.Order.ID)
		}
		seen[v.Order.ID] = true
	}
}

func TestBuildGreedyOrderOnALine(t *testing.T) {
	// Three stops east of the base at increasing longitude: greedy must visit
	// them in longitude order.
	cands := []model.VisitCandidate{
		cand("far", 46.08, 16.0),
		cand("near", 46.08, 13.5),
		cand("mid", 46.08, 14.5),
	}
	got := Build(base, 0, cands)
	order := []string{got.Visits[0].Order.ID, got.Visits[1].Order.ID, got.Visits[2].Order.ID}
	want := []string{"near", "mid", "far"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
	// Incremental distances chain stop to stop.
	d12 := geo.HaversineKm(geo.Point{Lat: 46.08, Lon: 13.5}, geo.Point{Lat: 46.08, Lon: 14.5})
	if math.Abs(got.Visits[1].KmFromPrevious-d12) > 1e-9 {
		t.Errorf("second stop distance must be measured from its predecessor")
	}
}

func TestBuildTotalKmSumsIncrements(t *testing.T) {
	cands := []model.VisitCandidate{
		cand("O1", 45.46, 9.19),
		cand("O2", 45.07, 7.69),
	}
	got := Build(base, 0, cands)
	sum := 0.0
	for _, v := range got.Visits {
		sum += v.KmFromPrevious
	}
	if math.Abs(got.TotalKm-sum) > 1e-9 {
		t.Fatalf("TotalKm %v must equal the sum of increments %v", got.TotalKm, sum)
	}
}
