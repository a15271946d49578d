package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/badgeforge/badgeforge/pkg/cache"
)

func newTestGraphicRenderer(t *testing.T, endpoint string) (*GraphicRenderer, *memCache) {
	t.Helper()
	c := newMemCache()
	r := NewGraphicRenderer(
		testGeocoder(endpoint),
		newTestFetcher(t),
		c,
		cache.NewDefaultKeyer(),
		0, DefaultCanvasPx, nil,
	)
	return r, c
}

func TestRenderGraphicEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"lat":"39.76","lon":"-84.19","display_name":"Dayton, Ohio","address":{"city":"Dayton","state":"Ohio","country":"United States"}}]`))
	}))
	defer srv.Close()

	r, _ := newTestGraphicRenderer(t, srv.URL)
	got := r.Render(context.Background(), "Dayton, Ohio")
	if got == nil {
		t.Fatal("expected a graphic")
	}
	svg := string(got)
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "#E07A5F") {
		t.Errorf("output does not look like a location graphic:\n%s", svg)
	}
}

func TestRenderGraphicGeocodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	r, c := newTestGraphicRenderer(t, srv.URL)

	// The badge must keep rendering without a graphic; no error, no panic.
	if got := r.Render(context.Background(), "Atlantis, Lost Kingdom"); got != nil {
		t.Fatalf("unresolvable location should yield nil, got %d bytes", len(got))
	}
	if c.sets != 1 {
		t.Errorf("definite failure should be cached once, got %d writes", c.sets)
	}
}

func TestRenderGraphicNetworkFailureNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	r, c := newTestGraphicRenderer(t, srv.URL)
	if got := r.Render(context.Background(), "Dayton, Ohio"); got != nil {
		t.Fatal("unreachable geocoder should yield nil")
	}
	if c.sets != 0 {
		t.Error("transient failure must not be cached")
	}
}

func TestRenderGraphicServedFromCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`[{"lat":"39.76","lon":"-84.19","display_name":"Dayton","address":{"city":"Dayton","state":"Ohio","country":"United States"}}]`))
	}))
	defer srv.Close()

	r, _ := newTestGraphicRenderer(t, srv.URL)
	ctx := context.Background()
	first := r.Render(ctx, "Dayton, Ohio")
	second := r.Render(ctx, "Dayton, Ohio")
	if calls != 1 {
		t.Errorf("second render should hit the cache, got %d geocoder calls", calls)
	}
	if string(first) != string(second) {
		t.Error("cached graphic differs from the original")
	}
}

func TestRenderGraphicEmptyLocation(t *testing.T) {
	r, c := newTestGraphicRenderer(t, "http://127.0.0.1:0")
	if got := r.Render(context.Background(), ""); got != nil {
		t.Error("empty location should yield nil")
	}
	if c.sets != 0 {
		t.Error("empty location should not touch the cache")
	}
}
