package geo

import (
	"context"
	"errors"
	"testing"
)

type stubResolver struct {
	p   Point
	err error
}

func (s stubResolver) Resolve(context.Context, string, string, string) (Point, error) {
	return s.p, s.err
}

type nopLog struct{}

func (nopLog) Debugf(string, ...any)         {}
func (nopLog) Debugw(string, map[string]any) {}
func (nopLog) Infof(string, ...any)          {}
func (nopLog) Warnf(string, ...any)          {}
func (nopLog) Errorf(string, ...any)         {}

var centroids = map[string]Point{
	"Lombardia": {Lat: 45.46, Lon: 9.19},
	"Veneto":    {Lat: 45.44, Lon: 12.32},
}

func TestFallbackResolverPassesThroughSuccess(t *testing.T) {
	want := Point{Lat: 45.0, Lon: 9.0}
	r := NewFallbackResolver(stubResolver{p: want}, centroids, nopLog{})
	got, err := r.Resolve(context.Background(), "20100", "Milano", "Lombardia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected inner result %v, got %v", want, got)
	}
	if r.Fallbacks() != 0 {
		t.Errorf("successful lookup must not count as fallback")
	}
}

func TestFallbackResolverDegradesToRegionalCentroid(t *testing.T) {
	r := NewFallbackResolver(stubResolver{err: errors.New("timeout")}, centroids, nopLog{})
	got, err := r.Resolve(context.Background(), "20100", "Milano", "Lombardia")
	if err != nil {
		t.Fatalf("fallback path must not return an error: %v", err)
	}
	if got != centroids["Lombardia"] {
		t.Fatalf("expected regional centroid, got %v", got)
	}
	if r.Fallbacks() != 1 {
		t.Errorf("expected 1 fallback, got %d", r.Fallbacks())
	}
}

func TestFallbackResolverUnknownRegionDefaultsToOrigin(t *testing.T) {
	r := NewFallbackResolver(nil, centroids, nopLog{})
	got, err := r.Resolve(context.Background(), "", "Atlantide", "Oceano")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("unknown region must default to origin, got %v", got)
	}
}

func TestFallbackResolverOnResult(t *testing.T) {
	var regions []string
	var flags []bool
	r := NewFallbackResolver(stubResolver{err: errors.New("down")}, centroids, nopLog{})
	r.OnResult = func(region string, fb bool) {
		regions = append(regions, region)
		flags = append(flags, fb)
	}
	if _, err := r.Resolve(context.Background(), "", "", "Veneto"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 1 || regions[0] != "Veneto" || !flags[0] {
		t.Fatalf("OnResult not invoked with fallback flag: %v %v", regions, flags)
	}
}
