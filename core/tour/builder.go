// Package tour sequences the visits of one (inspector, cluster) group into a
// tour using a greedy nearest-neighbor heuristic. O(n²) per group is fine:
// group sizes are bounded by cluster size, not by the whole dataset.
package tour

import (
	"fmt"

	"github.com/visitplan/visitplan/core/geo"
	"github.com/visitplan/visitplan/core/model"
)

// Tour is the ordered visiting sequence for one (inspector, cluster) pair.
// The order is final: day scheduling only adds dates, it never reorders.
type Tour struct {
	Inspector model.Inspector
	ClusterID int
	Visits    []model.Visit
	TotalKm   float64
}

// Zone returns the tour's zone label.
func (t Tour) Zone() string {
	return fmt.Sprintf("Cluster_%d_%s", t.ClusterID, t.Inspector.Name)
}

// Build orders the candidates starting from the inspector's home base,
// repeatedly picking the nearest unvisited candidate. Ties go to the first
// occurrence in iteration order, so the result is deterministic for a fixed
// input ordering. Each visit records the geodesic km from its predecessor
// (home base for the first stop). An empty group yields an empty tour.
func Build(inspector model.Inspector, clusterID int, cands []model.VisitCandidate) Tour {
	t := Tour{Inspector: inspector, ClusterID: clusterID}
	if len(cands) == 0 {
		return t
	}

	pool := append([]model.VisitCandidate(nil), cands...)
	current := geo.Point{Lat: inspector.BaseLat, Lon: inspector.BaseLon}

	for len(pool) > 0 {
		nearest := 0
		nearestKm := geo.HaversineKm(current, geo.Point{Lat: pool[0].Lat, Lon: pool[0].Lon})
		for i := 1; i < len(pool); i++ {
			if d := geo.HaversineKm(current, geo.Point{Lat: pool[i].Lat, Lon: pool[i].Lon}); d < nearestKm {
				nearest, nearestKm = i, d
			}
		}

		c := pool[nearest]
		t.Visits = append(t.Visits, model.Visit{
			VisitCandidate: c,
			Inspector:      inspector.Name,
			Zone:           t.Zone(),
			KmFromPrevious: nearestKm,
			Status:         model.StatusPending,
		})
		t.TotalKm += nearestKm
		current = geo.Point{Lat: c.Lat, Lon: c.Lon}
		pool = append(pool[:nearest], pool[nearest+1:]...)
	}
	return t
}
