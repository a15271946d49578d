package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/badgeforge/badgeforge/pkg/config"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func testGeocoder(endpoint string) *Geocoder {
	cfg := config.Default().Geocoder
	cfg.Endpoint = endpoint
	cfg.MinIntervalSec = 0 // no throttling in tests
	return NewGeocoder(cfg)
}

func TestGeocodeFound(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		if r.Header.Get("User-Agent") == "" {
			t.Error("request missing User-Agent")
		}
		w.Write([]byte(`[{"lat":"39.7589","lon":"-84.1916","display_name":"Dayton, Montgomery County, Ohio, United States","address":{"city":"Dayton","state":"Ohio","country":"United States"}}]`))
	}))
	defer srv.Close()

	got := testGeocoder(srv.URL).Geocode(context.Background(), "Dayton, OH, United States")
	if got.Status != GeocodeFound {
		t.Fatalf("status = %v, err = %v", got.Status, got.Err)
	}
	if got.Location.Latitude != 39.7589 || got.Location.Longitude != -84.1916 {
		t.Errorf("coordinates = %g, %g", got.Location.Latitude, got.Location.Longitude)
	}
	if got.Location.Address.State != "Ohio" {
		t.Errorf("address state = %q", got.Location.Address.State)
	}
	if query != "Dayton, OH, United States" {
		t.Errorf("query = %q", query)
	}
}

func TestGeocodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got := testGeocoder(srv.URL).Geocode(context.Background(), "Atlantis, Lost Kingdom")
	if got.Status != GeocodeNotFound {
		t.Errorf("status = %v, want not-found", got.Status)
	}
	if got.Err != nil {
		t.Errorf("not-found should carry no error, got %v", got.Err)
	}
}

func TestGeocodeNetworkError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := testGeocoder(srv.URL).Geocode(context.Background(), "Dayton")
	if got.Status != GeocodeNetworkError {
		t.Fatalf("status = %v, want network error", got.Status)
	}
	if got.Err == nil {
		t.Error("network error should carry the underlying error")
	}
	if calls < 2 {
		t.Errorf("5xx should be retried, got %d calls", calls)
	}
}

func TestGeocodeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	got := testGeocoder(srv.URL).Geocode(context.Background(), "Dayton")
	if got.Status != GeocodeNetworkError {
		t.Errorf("status = %v, want network error", got.Status)
	}
}
