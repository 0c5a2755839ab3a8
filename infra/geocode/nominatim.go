package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/visitplan/visitplan/core/geo"
	"github.com/visitplan/visitplan/infra/logger"
)

// NominatimClient resolves addresses through a Nominatim search endpoint. It
// implements geo.Resolver and throttles requests to the configured rate.
type NominatimClient struct {
	client    *http.Client
	log       logger.Logger
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	country   string
}

// NewNominatimClient creates a client for the configured endpoint.
func NewNominatimClient(cfg Config) *NominatimClient {
	cfg.SetDefaults()
	return &NominatimClient{
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:       logger.New("geocode"),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		country:   cfg.Country,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the postal code and city. It returns an error when the
// service is unreachable or finds no match, so callers can fall back to a
// regional centroid.
func (c *NominatimClient) Resolve(ctx context.Context, postalCode, city, region string) (geo.Point, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return geo.Point{}, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("country", c.country)
	if postalCode != "" {
		q.Set("postalcode", postalCode)
	}
	if city != "" {
		q.Set("city", city)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return geo.Point{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("geocode status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Point{}, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return geo.Point{}, fmt.Errorf("no result for %s %s (%s)", postalCode, city, region)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode lon: %w", err)
	}

	c.log.Debugf("resolved %s %s to %.4f,%.4f", postalCode, city, lat, lon)
	return geo.Point{Lat: lat, Lon: lon}, nil
}
