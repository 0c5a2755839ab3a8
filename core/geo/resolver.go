package geo

import (
	"context"
	"sync/atomic"

	"github.com/visitplan/visitplan/core/logger"
)

// Resolver turns an address fragment into coordinates. Implementations may
// call external services and should honor the context deadline.
type Resolver interface {
	Resolve(ctx context.Context, postalCode, city, region string) (Point, error)
}

// FallbackResolver decorates a Resolver with a static regional centroid
// table. Lookup failures never propagate: the candidate degrades to its
// region's centroid, or to the neutral origin if the region is unknown.
type FallbackResolver struct {
	inner   Resolver
	regions map[string]Point
	log     logger.Logger

	fallbacks atomic.Int64

	// OnResult, when set, is invoked after every lookup with the region and
	// whether the fallback path was taken. Used for observability only.
	OnResult func(region string, fallback bool)
}

// NewFallbackResolver wraps inner with the regional centroid table. A nil
// inner resolver sends every lookup straight to the fallback path.
func NewFallbackResolver(inner Resolver, regions map[string]Point, log logger.Logger) *FallbackResolver {
	return &FallbackResolver{inner: inner, regions: regions, log: log}
}

// Resolve implements Resolver. The returned error is always nil.
func (r *FallbackResolver) Resolve(ctx context.Context, postalCode, city, region string) (Point, error) {
	if r.inner != nil {
		p, err := r.inner.Resolve(ctx, postalCode, city, region)
		if err == nil {
			r.record(region, false)
			return p, nil
		}
		r.log.Warnf("geocoding %s %s failed: %v, using regional fallback", postalCode, city, err)
	}
	r.fallbacks.Add(1)
	r.record(region, true)
	if p, ok := r.regions[region]; ok {
		return p, nil
	}
	// Unknown region: the neutral origin silently degrades tour quality, so
	// make it loud in the logs.
	r.log.Errorf("region %q missing from centroid table, defaulting to origin", region)
	return Point{}, nil
}

// Fallbacks returns how many lookups degraded to a regional centroid.
func (r *FallbackResolver) Fallbacks() int64 { return r.fallbacks.Load() }

func (r *FallbackResolver) record(region string, fallback bool) {
	if r.OnResult != nil {
		r.OnResult(region, fallback)
	}
}
