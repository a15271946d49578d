package location

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/errors"
)

// BoundaryFetcher looks up state and country outline polygons in the
// bundled Natural Earth GeoJSON extracts. The feature collections are
// loaded lazily on first use and kept in memory.
type BoundaryFetcher struct {
	countriesPath string
	statesPath    string

	mu        sync.Mutex
	countries *geojson.FeatureCollection
	states    *geojson.FeatureCollection
}

// NewBoundaryFetcher builds a fetcher over the configured data files.
func NewBoundaryFetcher(cfg config.Boundaries) *BoundaryFetcher {
	return &BoundaryFetcher{
		countriesPath: filepath.Join(cfg.DataDir, cfg.CountriesFile),
		statesPath:    filepath.Join(cfg.DataDir, cfg.StatesFile),
	}
}

// Boundary returns the most specific outline for a parsed location: the
// state or province when the region matches, otherwise the country.
func (f *BoundaryFetcher) Boundary(parsed ParsedLocation) (orb.Geometry, error) {
	if parsed.Region != "" {
		country := parsed.Country
		if country == "" {
			country = "United States"
		}
		if geom, err := f.stateBoundary(parsed.Region, country); err == nil {
			return geom, nil
		}
	}

	if parsed.Country != "" {
		return f.countryBoundary(parsed.Country)
	}

	return nil, errors.New(errors.ErrCodeBoundaryNotFound, "no boundary for %q", parsed.Original)
}

// stateBoundary matches a state/province by name or postal code within
// the given country.
func (f *BoundaryFetcher) stateBoundary(region, country string) (orb.Geometry, error) {
	fc, err := f.load(&f.states, f.statesPath)
	if err != nil {
		return nil, err
	}

	countryKey := strings.ToLower(country)
	switch countryKey {
	case "usa", "us", "united states", "united states of america":
		countryKey = "united states"
	}
	regionKey := strings.ToLower(region)

	for _, feat := range fc.Features {
		admin := strings.ToLower(feat.Properties.MustString("admin", ""))
		if !strings.Contains(admin, countryKey) {
			continue
		}
		name := strings.ToLower(feat.Properties.MustString("name", ""))
		postal := strings.ToLower(feat.Properties.MustString("postal", ""))
		if name == regionKey || postal == regionKey {
			return feat.Geometry, nil
		}
	}
	return nil, errors.New(errors.ErrCodeBoundaryNotFound, "no state boundary for %q, %q", region, country)
}

// countryBoundary matches a country by exact name or long-name substring.
func (f *BoundaryFetcher) countryBoundary(country string) (orb.Geometry, error) {
	fc, err := f.load(&f.countries, f.countriesPath)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(country)
	for _, feat := range fc.Features {
		name := strings.ToLower(feat.Properties.MustString("NAME", ""))
		long := strings.ToLower(feat.Properties.MustString("NAME_LONG", ""))
		if name == key || (long != "" && strings.Contains(long, key)) {
			return feat.Geometry, nil
		}
	}
	return nil, errors.New(errors.ErrCodeBoundaryNotFound, "no country boundary for %q", country)
}

// load reads and parses a feature collection once, caching it in slot.
func (f *BoundaryFetcher) load(slot **geojson.FeatureCollection, path string) (*geojson.FeatureCollection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if *slot != nil {
		return *slot, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "boundary data missing: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read boundary data %s", path)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse boundary data %s", path)
	}
	*slot = fc
	return fc, nil
}
