package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimClientResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("postalcode"); got != "33010" {
			t.Errorf("postalcode = %q", got)
		}
		if got := r.URL.Query().Get("country"); got != "Italia" {
			t.Errorf("country = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got == "" {
			t.Errorf("missing user agent")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"46.08","lon":"13.18"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(Config{BaseURL: srv.URL, RatePerSecond: 100})
	pt, err := c.Resolve(context.Background(), "33010", "Pagnacco", "Friuli-Venezia Giulia")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pt.Lat != 46.08 || pt.Lon != 13.18 {
		t.Fatalf("unexpected point %+v", pt)
	}
}

func TestNominatimClientNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(Config{BaseURL: srv.URL, RatePerSecond: 100})
	if _, err := c.Resolve(context.Background(), "00000", "Nowhere", "Lazio"); err == nil {
		t.Fatalf("expected error on empty result")
	}
}

func TestNominatimClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewNominatimClient(Config{BaseURL: srv.URL, RatePerSecond: 100})
	if _, err := c.Resolve(context.Background(), "33010", "Pagnacco", ""); err == nil {
		t.Fatalf("expected error on 503")
	}
}
