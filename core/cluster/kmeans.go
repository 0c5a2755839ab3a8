// Package cluster partitions geocoded visit candidates into a bounded number
// of geographic groups. Clustering only bounds tour size; it does not respect
// inspector eligibility and makes no promise about cluster balance.
package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/visitplan/visitplan/core/geo"
)

const maxIterations = 100

// Assign runs k-means over the (lat, lon) pairs and returns one cluster id in
// [0, k) per point, in input order. K is clamped to the number of points; a
// fixed seed keeps runs reproducible for identical input orderings. An empty
// input returns nil.
func Assign(points []geo.Point, k int, seed int64) []int {
	n := len(points)
	if n == 0 {
		return nil
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	data := make([][]float64, n)
	for i, p := range points {
		data[i] = []float64{p.Lat, p.Lon}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(data, k, rng)

	labels := make([]int, n)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range data {
			best := nearestCentroid(p, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(data, labels, centroids)
	}
	return labels
}

// seedCentroids picks k initial centroids k-means++ style: the first at
// random, each next one weighted by squared distance to the closest centroid
// chosen so far. Points already chosen carry zero weight and are never
// re-picked, so k <= n distinct starting centroids are guaranteed.
func seedCentroids(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := append([]float64(nil), data[rng.Intn(len(data))]...)
	centroids = append(centroids, first)

	dist2 := make([]float64, len(data))
	for len(centroids) < k {
		var total float64
		for i, p := range data {
			d := floats.Distance(p, centroids[len(centroids)-1], 2)
			d2 := d * d
			if len(centroids) == 1 || d2 < dist2[i] {
				dist2[i] = d2
			}
			total += dist2[i]
		}
		idx := -1
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, w := range dist2 {
				acc += w
				if acc >= target {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			// All remaining weights are zero (duplicate points); take the
			// first point not already used as a centroid.
			idx = firstUnused(data, centroids)
		}
		centroids = append(centroids, append([]float64(nil), data[idx]...))
	}
	return centroids
}

func firstUnused(data, centroids [][]float64) int {
	for i, p := range data {
		used := false
		for _, c := range centroids {
			if p[0] == c[0] && p[1] == c[1] {
				used = true
				break
			}
		}
		if !used {
			return i
		}
	}
	return 0
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.MaxFloat64
	for j, c := range centroids {
		if d := floats.Distance(p, c, 2); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// recomputeCentroids moves each centroid to the mean of its members. A
// centroid with no members keeps its previous position.
func recomputeCentroids(data [][]float64, labels []int, centroids [][]float64) {
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, 2)
	}
	for i, p := range data {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}
	for j := range centroids {
		if counts[j] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[j]), sums[j])
		copy(centroids[j], sums[j])
	}
}
