package location

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/badgeforge/badgeforge/pkg/cache"
)

// stateAbbrevs maps full US state names to postal abbreviations for the
// normalized "City, ST" form.
var stateAbbrevs = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY",
}

// Normalizer standardizes raw location strings to "City, ST" (US) or
// "City, Country" form, caching every outcome.
//
// Failed lookups are cached as the empty string so a known-bad location
// never hits the rate-limited geocoder twice. Network errors are not
// cached: the same string may resolve once the service is reachable.
type Normalizer struct {
	geocoder *Geocoder
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	logger   *log.Logger
}

// NewNormalizer builds a Normalizer over the given geocoder and cache.
func NewNormalizer(g *Geocoder, c cache.Cache, k cache.Keyer, ttl time.Duration, logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Normalizer{geocoder: g, cache: c, keyer: k, ttl: ttl, logger: logger}
}

// Normalize returns the standardized form of raw, or ok=false when the
// location cannot be resolved. Blank input resolves to nothing without
// touching the cache or the network.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (normalized string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}

	key := n.keyer.NormalizationKey(raw)
	if data, hit, err := n.cache.Get(ctx, key); err == nil && hit {
		cached := string(data)
		return cached, cached != ""
	}

	result := n.geocoder.Geocode(ctx, raw)
	switch result.Status {
	case GeocodeFound:
		normalized = formatNormalized(result.Location)
		n.put(ctx, key, normalized)
		return normalized, true
	case GeocodeNotFound:
		// Permanent failure marker.
		n.put(ctx, key, "")
		return "", false
	default:
		n.logger.Warn("location normalization skipped", "location", raw, "err", result.Err)
		return "", false
	}
}

func (n *Normalizer) put(ctx context.Context, key, value string) {
	if err := n.cache.Set(ctx, key, []byte(value), n.ttl); err != nil {
		n.logger.Warn("location cache write failed", "err", err)
	}
}

// formatNormalized picks the display form for a geocoding hit.
//
// US locations become "City, ST". International locations become
// "City, Country", degrading to "State, Country", bare country, and
// finally the first component of the service's display name.
func formatNormalized(loc GeocodedLocation) string {
	addr := loc.Address

	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}
	if city == "" {
		city = addr.County
	}

	if addr.Country == "United States" || addr.Country == "United States of America" {
		if city != "" && addr.State != "" {
			return city + ", " + abbreviateState(addr.State)
		}
		if addr.State != "" {
			return addr.State
		}
	}

	switch {
	case city != "" && addr.Country != "":
		return city + ", " + addr.Country
	case addr.State != "" && addr.Country != "":
		return addr.State + ", " + addr.Country
	case addr.Country != "":
		return addr.Country
	}

	name, _, _ := strings.Cut(loc.DisplayName, ",")
	return name
}

func abbreviateState(name string) string {
	if abbrev, ok := stateAbbrevs[name]; ok {
		return abbrev
	}
	return name
}
