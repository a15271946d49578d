// Package cli implements the badgeforge command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/badgeforge/badgeforge/pkg/buildinfo"
	"github.com/badgeforge/badgeforge/pkg/cache"
	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/location"
	"github.com/badgeforge/badgeforge/pkg/pipeline"
	"github.com/badgeforge/badgeforge/pkg/render/sink"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "badgeforge"

	// defaultWorkers is the batch concurrency when --workers is not given.
	defaultWorkers = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "badgeforge",
		Short:        "Badgeforge renders conference badges from event data",
		Long:         `Badgeforge is a CLI tool for composing and rendering 3"x4" conference badges: it fits names and tag rows to the available space, normalizes attendee locations, and writes SVG or JSON output per attendee.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.locationCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Pipeline Factory
// =============================================================================

// newRunner assembles the full render pipeline from configuration: the
// text measurer, the location subsystem on its cache backend, the
// composer, and one sink per requested output format.
func (c *CLI) newRunner(cfg config.Config, outputDir string, formats []string, workers int, offline, noCache bool) (*pipeline.Runner, *text.Measurer, error) {
	m, err := text.NewMeasurer()
	if err != nil {
		return nil, nil, err
	}

	var normalizer *location.Normalizer
	var graphics *location.GraphicRenderer
	if !offline {
		store := newCache(cfg.Cache, noCache)
		keyer := cache.NewDefaultKeyer()
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		geocoder := location.NewGeocoder(cfg.Geocoder)
		boundaries := location.NewBoundaryFetcher(cfg.Boundaries)
		normalizer = location.NewNormalizer(geocoder, store, keyer, ttl, c.Logger)
		graphics = location.NewGraphicRenderer(geocoder, boundaries, store, keyer, ttl, location.DefaultCanvasPx, c.Logger)
	}

	composer := pipeline.NewComposer(m, cfg, normalizer, graphics, c.Logger)
	sinks := newSinks(outputDir, formats, m, cfg)
	return pipeline.NewRunner(composer, sinks, workers, c.Logger), m, nil
}

// newCache selects the cache backend: Redis when configured, otherwise a
// file cache, falling back to a null cache when neither is usable.
func newCache(cfg config.CacheConfig, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if cfg.RedisAddr != "" {
		if c, err := cache.NewRedisCache(cfg.RedisAddr, appName); err == nil {
			return c
		}
	}
	if c, err := cache.NewFileCache(cfg.Dir); err == nil {
		return c
	}
	return cache.NewNullCache()
}

func newSinks(outputDir string, formats []string, m *text.Measurer, cfg config.Config) []pipeline.Sink {
	sinks := make([]pipeline.Sink, 0, len(formats))
	for _, format := range formats {
		switch format {
		case formatSVG:
			sinks = append(sinks, sink.NewSVGSink(outputDir, m, cfg))
		case formatJSON:
			sinks = append(sinks, sink.NewJSONSink(outputDir))
		}
	}
	return sinks
}

// =============================================================================
// Interests Images
// =============================================================================

// interestsImage returns the attendee's interests collage path if one
// exists under dir, or "" when the attendee has none.
func interestsImage(dir, attendeeID string) string {
	if dir == "" {
		return ""
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(dir, attendeeID+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// =============================================================================
// Format Helpers
// =============================================================================

const (
	formatSVG  = "svg"
	formatJSON = "json"
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatJSON: true}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}
