package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/badgeforge/badgeforge/pkg/cache"
	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/location"
)

// locationCommand creates the location debug command. It exposes the
// normalization and outline-graphic stages individually so operators can
// check how an attendee's free-form location will appear on the badge.
func (c *CLI) locationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Inspect location normalization and graphics",
	}

	cmd.AddCommand(c.locationNormalizeCommand())
	cmd.AddCommand(c.locationGraphicCommand())

	return cmd
}

// locationNormalizeCommand creates the "location normalize" subcommand.
func (c *CLI) locationNormalizeCommand() *cobra.Command {
	var configPath string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "normalize <location>",
		Short: "Geocode a location and print its badge label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			normalizer, _ := c.newLocationStack(cfg, noCache)

			spinner := newSpinnerWithContext(cmd.Context(), "Geocoding "+raw)
			spinner.Start()
			normalized, ok := normalizer.Normalize(cmd.Context(), raw)
			spinner.Stop()

			parsed := location.Parse(raw)
			printKeyValue("input", raw)
			printKeyValue("query", parsed.Query())
			if !ok {
				printWarning("No normalized form; the badge falls back to the raw value")
				return nil
			}
			printKeyValue("label", normalized)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the location cache")
	return cmd
}

// locationGraphicCommand creates the "location graphic" subcommand.
func (c *CLI) locationGraphicCommand() *cobra.Command {
	var configPath, output string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "graphic <location>",
		Short: "Render a location's boundary outline to SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			_, graphics := c.newLocationStack(cfg, noCache)

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering "+raw)
			spinner.Start()
			svg := graphics.Render(cmd.Context(), raw)
			spinner.Stop()

			if len(svg) == 0 {
				printWarning("No graphic for %q; the badge omits the outline", raw)
				return nil
			}
			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered outline for %s", raw)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().StringVarP(&output, "output", "o", "location.svg", "output SVG path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the location cache")
	return cmd
}

// newLocationStack builds the normalizer and graphic renderer on a shared
// geocoder and cache backend.
func (c *CLI) newLocationStack(cfg config.Config, noCache bool) (*location.Normalizer, *location.GraphicRenderer) {
	store := newCache(cfg.Cache, noCache)
	keyer := cache.NewDefaultKeyer()
	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
	geocoder := location.NewGeocoder(cfg.Geocoder)
	boundaries := location.NewBoundaryFetcher(cfg.Boundaries)

	normalizer := location.NewNormalizer(geocoder, store, keyer, ttl, c.Logger)
	graphics := location.NewGraphicRenderer(geocoder, boundaries, store, keyer, ttl, location.DefaultCanvasPx, c.Logger)
	return normalizer, graphics
}
