// Package location turns a free-text location string into a small SVG
// graphic: the enclosing state or country outline with a star at the
// city's position.
//
// The pipeline is parse -> geocode -> boundary lookup -> projection ->
// SVG. Every stage can fail softly; callers receive nil instead of a
// graphic and the badge renders without one. The geocoder is the only
// networked stage and is wrapped by a disk-backed normalizer cache so a
// known-bad location string never hits the network twice.
package location

import "strings"

// ParsedLocation is the structured form of a raw location string.
type ParsedLocation struct {
	Original string
	City     string
	Region   string // state or province, optional
	Country  string // optional
}

// usStates matches the second part of a two-part location against US
// state names and postal abbreviations, including DC.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
	"DC": true,

	"Alabama": true, "Alaska": true, "Arizona": true, "Arkansas": true,
	"California": true, "Colorado": true, "Connecticut": true,
	"Delaware": true, "Florida": true, "Georgia": true, "Hawaii": true,
	"Idaho": true, "Illinois": true, "Indiana": true, "Iowa": true,
	"Kansas": true, "Kentucky": true, "Louisiana": true, "Maine": true,
	"Maryland": true, "Massachusetts": true, "Michigan": true,
	"Minnesota": true, "Mississippi": true, "Missouri": true,
	"Montana": true, "Nebraska": true, "Nevada": true,
	"New Hampshire": true, "New Jersey": true, "New Mexico": true,
	"New York": true, "North Carolina": true, "North Dakota": true,
	"Ohio": true, "Oklahoma": true, "Oregon": true, "Pennsylvania": true,
	"Rhode Island": true, "South Carolina": true, "South Dakota": true,
	"Tennessee": true, "Texas": true, "Utah": true, "Vermont": true,
	"Virginia": true, "Washington": true, "West Virginia": true,
	"Wisconsin": true, "Wyoming": true, "District of Columbia": true,
}

// Parse splits a location string on commas.
//
// One part is a bare city. Two parts are city plus either a US state
// (implying country "United States") or a country. Three or more parts
// are city, region, country; anything past the third part is ignored.
func Parse(s string) ParsedLocation {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		return ParsedLocation{Original: s, City: parts[0]}
	case 2:
		if usStates[parts[1]] {
			return ParsedLocation{
				Original: s,
				City:     parts[0],
				Region:   parts[1],
				Country:  "United States",
			}
		}
		return ParsedLocation{Original: s, City: parts[0], Country: parts[1]}
	default:
		return ParsedLocation{
			Original: s,
			City:     parts[0],
			Region:   parts[1],
			Country:  parts[2],
		}
	}
}

// Query reassembles the parsed parts into a human-readable geocoding
// query: "city[, region][, country]".
func (p ParsedLocation) Query() string {
	parts := []string{p.City}
	if p.Region != "" {
		parts = append(parts, p.Region)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	return strings.Join(parts, ", ")
}
