package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/httputil"
)

// GeocodeStatus classifies a geocoding outcome. Distinguishing "the
// service answered and knows nothing" from "the service was unreachable"
// matters: only the former is cached as a permanent failure.
type GeocodeStatus int

const (
	// GeocodeFound means the query resolved to coordinates.
	GeocodeFound GeocodeStatus = iota

	// GeocodeNotFound means the service answered with an empty result
	// set; the query will never resolve and may be cached as failed.
	GeocodeNotFound

	// GeocodeNetworkError means the request failed or timed out; the
	// query may succeed later and must not be cached as failed.
	GeocodeNetworkError
)

// GeocodeResult is the typed outcome of one geocoding call.
type GeocodeResult struct {
	Status   GeocodeStatus
	Location GeocodedLocation
	Err      error // set only for GeocodeNetworkError
}

// GeocodedLocation is a resolved coordinate with the service's address
// breakdown, used by the normalizer to format display strings.
type GeocodedLocation struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	Address     Address
}

// Address carries the structured address fields returned alongside a
// geocoding hit.
type Address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	County  string `json:"county"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// nominatimResult mirrors one entry of the Nominatim response. Latitude
// and longitude arrive as strings.
type nominatimResult struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

// Geocoder resolves location queries against a Nominatim endpoint.
//
// Each instance self-throttles to the configured minimum interval with a
// blocking sleep before every request. The limiter is per-instance:
// concurrent renders must share one Geocoder (the mutex serializes
// calls) or arrange external rate limiting.
type Geocoder struct {
	http      *http.Client
	endpoint  string
	userAgent string
	language  string

	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// NewGeocoder builds a Geocoder from configuration.
func NewGeocoder(cfg config.Geocoder) *Geocoder {
	return &Geocoder{
		http:        &http.Client{Timeout: time.Duration(cfg.TimeoutSecs * float64(time.Second))},
		endpoint:    cfg.Endpoint,
		userAgent:   cfg.UserAgent,
		language:    cfg.Language,
		minInterval: time.Duration(cfg.MinIntervalSec * float64(time.Second)),
	}
}

// Geocode resolves a query string to coordinates. The call blocks until
// the rate limiter allows a request, then retries transient failures
// with backoff. It never returns a Go error for "no such place"; that is
// the GeocodeNotFound status.
func (g *Geocoder) Geocode(ctx context.Context, query string) GeocodeResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	var results []nominatimResult
	fetch := func() error {
		g.throttle()
		return g.fetch(ctx, query, &results)
	}
	if err := httputil.Retry(ctx, 2, g.minInterval, fetch); err != nil {
		return GeocodeResult{Status: GeocodeNetworkError, Err: err}
	}

	if len(results) == 0 {
		return GeocodeResult{Status: GeocodeNotFound}
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return GeocodeResult{Status: GeocodeNotFound}
	}

	return GeocodeResult{
		Status: GeocodeFound,
		Location: GeocodedLocation{
			Latitude:    lat,
			Longitude:   lon,
			DisplayName: results[0].DisplayName,
			Address:     results[0].Address,
		},
	}
}

// throttle sleeps until the minimum interval since the last request has
// passed. Called with the mutex held.
func (g *Geocoder) throttle() {
	if elapsed := time.Since(g.lastRequest); elapsed < g.minInterval {
		time.Sleep(g.minInterval - elapsed)
	}
	g.lastRequest = time.Now()
}

func (g *Geocoder) fetch(ctx context.Context, query string, results *[]nominatimResult) error {
	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}
	if g.language != "" {
		params.Set("accept-language", g.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(results)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("geocoder status %d", resp.StatusCode)}
	default:
		return fmt.Errorf("geocoder status %d", resp.StatusCode)
	}
}
