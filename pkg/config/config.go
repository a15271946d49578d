// Package config defines the explicit configuration object passed into
// every badge-rendering component.
//
// Nothing in the pipeline reads process-wide globals: the geometry
// constants, font families, cache locations, and geocoder endpoint all
// live here, are constructed once (defaults, optionally overlaid with a
// TOML file), and flow into components at construction time. This keeps
// multiple render contexts independent within one process and makes the
// layout constants testable and operator-tunable.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/badgeforge/badgeforge/pkg/errors"
)

// Badge holds the physical layout constants for the 3"x4" badge, in
// inches and points. The safety margins absorb the discrepancy between
// the text-width oracle's font metrics and the print renderer's; retune
// them only after comparing the two empirically.
type Badge struct {
	WidthIn  float64 `toml:"width_in"`
	HeightIn float64 `toml:"height_in"`

	// Name zone
	NameMaxWidthIn   float64 `toml:"name_max_width_in"`
	NameFontPt       float64 `toml:"name_font_pt"`
	NameMinFontPt    float64 `toml:"name_min_font_pt"`
	NameSafetyMargin float64 `toml:"name_safety_margin"` // fraction of max width

	// Professional block
	TitleZoneWidthIn   float64 `toml:"title_zone_width_in"`
	TitleFontPt        float64 `toml:"title_font_pt"`
	TitleSafetyMargin  float64 `toml:"title_safety_margin"` // fraction of zone width
	LineHeight         float64 `toml:"line_height"`
	CompanyFontPt      float64 `toml:"company_font_pt"`
	CompanyMarginTopIn float64 `toml:"company_margin_top_in"`
	ProfessionalTopIn  float64 `toml:"professional_top_in"`
	GraphicSizeIn      float64 `toml:"graphic_size_in"`

	// Interests band
	InterestsGapIn        float64 `toml:"interests_gap_in"`
	InterestsBandWidthIn  float64 `toml:"interests_band_width_in"`
	InterestsBandHeightIn float64 `toml:"interests_band_height_in"`
	BottomTagsTopIn       float64 `toml:"bottom_tags_top_in"`
	MinGapToTagsIn        float64 `toml:"min_gap_to_tags_in"`

	// Tag rows
	TagRowWidthIn         float64 `toml:"tag_row_width_in"`
	TagSafetyFactor       float64 `toml:"tag_safety_factor"` // usable fraction of row width
	MicroBadgeSizeIn      float64 `toml:"micro_badge_size_in"`
	BottomRowMicroWidthIn float64 `toml:"bottom_row_micro_width_in"`
}

// Fonts names the font families used for measurement and rendering. The
// families must be registered with the text measurer.
type Fonts struct {
	Name string `toml:"name"` // attendee name (bold weight)
	Body string `toml:"body"` // title, company, tags
}

// CacheConfig selects the cache backend for location normalization and
// location graphics. If RedisAddr is set the Redis backend is used,
// otherwise a file cache under Dir.
type CacheConfig struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTLHours  int    `toml:"ttl_hours"` // 0 = never expire
}

// Geocoder configures the Nominatim client.
type Geocoder struct {
	Endpoint       string  `toml:"endpoint"`
	UserAgent      string  `toml:"user_agent"`
	TimeoutSecs    float64 `toml:"timeout_secs"`
	MinIntervalSec float64 `toml:"min_interval_secs"`
	Language       string  `toml:"language"`
}

// Boundaries locates the bundled boundary GeoJSON data.
type Boundaries struct {
	DataDir       string `toml:"data_dir"`
	CountriesFile string `toml:"countries_file"`
	StatesFile    string `toml:"states_file"`
}

// Store configures event/attendee data access. MongoURI switches from the
// JSON file store to the Mongo store.
type Store struct {
	DataDir  string `toml:"data_dir"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// Config is the root configuration object.
type Config struct {
	Badge      Badge       `toml:"badge"`
	Fonts      Fonts       `toml:"fonts"`
	Cache      CacheConfig `toml:"cache"`
	Geocoder   Geocoder    `toml:"geocoder"`
	Boundaries Boundaries  `toml:"boundaries"`
	Store      Store       `toml:"store"`
}

// Default returns the configuration matching the reference badge layout.
func Default() Config {
	return Config{
		Badge: Badge{
			WidthIn:  3.0,
			HeightIn: 4.0,

			NameMaxWidthIn:   2.7,
			NameFontPt:       18.0,
			NameMinFontPt:    12.0,
			NameSafetyMargin: 0.08,

			TitleZoneWidthIn:   2.2,
			TitleFontPt:        10.0,
			TitleSafetyMargin:  0.05,
			LineHeight:         1.2,
			CompanyFontPt:      9.0,
			CompanyMarginTopIn: 0.04,
			ProfessionalTopIn:  1.83,
			GraphicSizeIn:      0.4,

			InterestsGapIn:        0.10,
			InterestsBandWidthIn:  2.7,
			InterestsBandHeightIn: 1.35,
			BottomTagsTopIn:       3.62,
			MinGapToTagsIn:        0.10,

			TagRowWidthIn:         2.7,
			TagSafetyFactor:       0.93,
			MicroBadgeSizeIn:      0.35,
			BottomRowMicroWidthIn: 2.25,
		},
		Fonts: Fonts{
			Name: "Go",
			Body: "Go",
		},
		Cache: CacheConfig{
			Dir: defaultCacheDir(),
		},
		Geocoder: Geocoder{
			Endpoint:       "https://nominatim.openstreetmap.org/search",
			UserAgent:      "badgeforge/1.0",
			TimeoutSecs:    10,
			MinIntervalSec: 1.0,
			Language:       "en",
		},
		Boundaries: Boundaries{
			DataDir:       "data/boundaries",
			CountriesFile: "countries.geojson",
			StatesFile:    "states.geojson",
		},
		Store: Store{
			DataDir: "data",
			MongoDB: "badgeforge",
		},
	}
}

// Load reads a TOML file and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the geometry for values the layout engine cannot work
// with. It guards against a config typo silently producing badges with
// overlapping or inverted zones.
func (c *Config) Validate() error {
	b := c.Badge
	switch {
	case b.WidthIn <= 0 || b.HeightIn <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "badge dimensions must be positive")
	case b.NameMinFontPt <= 0 || b.NameMinFontPt > b.NameFontPt:
		return errors.New(errors.ErrCodeInvalidConfig,
			"name min font (%g) must be positive and <= default font (%g)", b.NameMinFontPt, b.NameFontPt)
	case b.NameSafetyMargin < 0 || b.NameSafetyMargin >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "name safety margin must be in [0, 1)")
	case b.TagSafetyFactor <= 0 || b.TagSafetyFactor > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "tag safety factor must be in (0, 1]")
	case b.BottomTagsTopIn >= b.HeightIn:
		return errors.New(errors.ErrCodeInvalidConfig, "bottom tag row (%gin) falls outside the badge", b.BottomTagsTopIn)
	case b.ProfessionalTopIn >= b.BottomTagsTopIn:
		return errors.New(errors.ErrCodeInvalidConfig, "professional block cannot start below the bottom tag row")
	}
	return nil
}

// defaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/badgeforge/).
func defaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "badgeforge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "badgeforge-cache")
	}
	return filepath.Join(home, ".cache", "badgeforge")
}
