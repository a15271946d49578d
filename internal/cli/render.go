package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/store"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string   // output directory
	formats      []string // output formats: "svg", "json"
	configPath   string   // optional TOML config overlay
	interestsDir string   // directory of per-attendee interest collages
	offline      bool     // skip geocoding and location graphics
	noCache      bool     // bypass the location cache
}

// renderCommand creates the render command for generating a single badge.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{output: "out"}

	cmd := &cobra.Command{
		Use:   "render <event-id> <attendee-id>",
		Short: "Render one attendee's badge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file overriding the default layout")
	cmd.Flags().StringVar(&opts.interestsDir, "interests-dir", "", "directory holding <attendee-id>.png interest collages")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip geocoding and location graphics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the location cache")

	return cmd
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg' or 'json')", f)
		}
	}
	return nil
}

// runRender loads the event and attendee, composes the badge, and writes
// it through every requested sink.
func (c *CLI) runRender(ctx context.Context, eventID, attendeeID string, opts *renderOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	event, err := st.Event(ctx, eventID)
	if err != nil {
		return err
	}
	att, err := st.Attendee(ctx, eventID, attendeeID)
	if err != nil {
		return err
	}

	runner, _, err := c.newRunner(cfg, opts.output, opts.formats, 1, opts.offline, opts.noCache)
	if err != nil {
		return err
	}

	p := newProgress(c.Logger)
	comp, err := runner.Execute(ctx, event, att, interestsImage(opts.interestsDir, att.ID))
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered badge for %s", att.Name))

	printSuccess("Rendered %s", comp.Name.Text)
	if comp.Name.Truncated {
		printDetail("name truncated from %q", att.Name)
	}
	for _, format := range opts.formats {
		printFile(filepath.Join(opts.output, event.ID, att.ID+"."+format))
	}
	return nil
}
