package cluster

import (
	"testing"

	"github.com/visitplan/visitplan/core/geo"
)

func TestAssignEmptyInput(t *testing.T) {
	if got := Assign(nil, 8, 42); got != nil {
		t.Fatalf("empty input should return nil, got %v", got)
	}
}

func TestAssignSinglePoint(t *testing.T) {
	got := Assign([]geo.Point{{Lat: 45, Lon: 9}}, 8, 42)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("single point must land in cluster 0, got %v", got)
	}
}

func TestAssignKClampedToN(t *testing.T) {
	// Three well-separated points with K=10: each gets its own cluster.
	points := []geo.Point{
		{Lat: 45.46, Lon: 9.19},  // Milano
		{Lat: 40.83, Lon: 14.25}, // Napoli
		{Lat: 46.08, Lon: 13.18}, // Pagnacco
	}
	labels := Assign(points, 10, 42)
	if len(labels) != len(points) {
		t.Fatalf("one label per point expected")
	}
	seen := map[int]bool{}
	for _, l := range labels {
		if l < 0 || l >= len(points) {
			t.Fatalf("label %d out of range [0,%d)", l, len(points))
		}
		if seen[l] {
			t.Fatalf("well-separated points with K>=N must get distinct clusters: %v", labels)
		}
		seen[l] = true
	}
}

func TestAssignGroupsNearbyPoints(t *testing.T) {
	points := []geo.Point{
		{Lat: 45.46, Lon: 9.19}, {Lat: 45.47, Lon: 9.20}, {Lat: 45.45, Lon: 9.18}, // around Milano
		{Lat: 40.83, Lon: 14.25}, {Lat: 40.84, Lon: 14.26}, // around Napoli
	}
	labels := Assign(points, 2, 42)
	if labels[0] != labels[1] || labels[1] != labels[2] {
		t.Errorf("Milano points should share a cluster: %v", labels)
	}
	if labels[3] != labels[4] {
		t.Errorf("Napoli points should share a cluster: %v", labels)
	}
	if labels[0] == labels[3] {
		t.Errorf("distant groups should not share a cluster: %v", labels)
	}
}

func TestAssignDeterministicForFixedSeed(t *testing.T) {
	points := []geo.Point{
		{Lat: 45.46, Lon: 9.19}, {Lat: 45.07, Lon: 7.69}, {Lat: 44.49, Lon: 11.34},
		{Lat: 41.90, Lon: 12.50}, {Lat: 40.83, Lon: 14.25}, {Lat: 38.12, Lon: 13.36},
	}
	a := Assign(points, 3, 42)
	b := Assign(points, 3, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed and input must give identical labels: %v vs %v", a, b)
		}
	}
}

func TestAssignDuplicatePoints(t *testing.T) {
	p := geo.Point{Lat: 45, Lon: 9}
	labels := Assign([]geo.Point{p, p, p}, 3, 7)
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %v", labels)
	}
	for _, l := range labels {
		if l < 0 || l >= 3 {
			t.Fatalf("label out of range: %v", labels)
		}
	}
}
