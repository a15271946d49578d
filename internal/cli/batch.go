package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/pipeline"
	"github.com/badgeforge/badgeforge/pkg/store"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	output       string
	formats      []string
	configPath   string
	interestsDir string
	workers      int
	offline      bool
	noCache      bool
	plain        bool // line-per-badge output instead of the progress UI
}

// batchCommand creates the batch command for rendering a whole event.
func (c *CLI) batchCommand() *cobra.Command {
	var formatsStr string
	opts := batchOpts{output: "out", workers: defaultWorkers}

	cmd := &cobra.Command{
		Use:   "batch <event-id>",
		Short: "Render badges for every attendee of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if err := validateWorkers(opts.workers); err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file overriding the default layout")
	cmd.Flags().StringVar(&opts.interestsDir, "interests-dir", "", "directory holding <attendee-id>.png interest collages")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "number of concurrent render workers")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip geocoding and location graphics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the location cache")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one line per badge instead of the progress display")

	return cmd
}

// runBatch renders every attendee of the event across a worker pool.
// Individual failures are reported but never abort the batch.
func (c *CLI) runBatch(ctx context.Context, eventID string, opts *batchOpts) error {
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
	attendees, err := st.Attendees(ctx, eventID)
	if err != nil {
		return err
	}
	if len(attendees) == 0 {
		printInfo("Event %s has no attendees", eventID)
		return nil
	}

	runner, _, err := c.newRunner(cfg, opts.output, opts.formats, opts.workers, opts.offline, opts.noCache)
	if err != nil {
		return err
	}

	images := make(map[string]string, len(attendees))
	for _, att := range attendees {
		if path := interestsImage(opts.interestsDir, att.ID); path != "" {
			images[att.ID] = path
		}
	}

	var summary pipeline.BatchSummary
	if opts.plain {
		summary = c.runBatchPlain(ctx, runner, event, attendees, images)
	} else {
		summary, err = runBatchUI(ctx, runner, event, attendees, images)
		if err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		printWarning("%d of %d badges failed", summary.Failed, len(attendees))
	} else {
		printSuccess("Rendered %s", event.DisplayName)
	}
	printBatchStats(summary.Rendered, summary.Failed, summary.Duration)
	printFile(opts.output)

	for _, res := range summary.Results {
		if res.Err != nil {
			printDetail("%s: %v", res.AttendeeID, res.Err)
		}
	}
	return nil
}

// runBatchPlain streams one log line per badge, suitable for CI output.
func (c *CLI) runBatchPlain(ctx context.Context, runner *pipeline.Runner, event *badge.Event, attendees []*badge.Attendee, images map[string]string) pipeline.BatchSummary {
	runner.OnResult = func(res pipeline.Result) {
		if res.Err != nil {
			c.Logger.Error("failed", "attendee", res.AttendeeID, "err", res.Err)
			return
		}
		c.Logger.Info("rendered", "attendee", res.AttendeeID, "duration", res.Duration)
	}
	return runner.RunBatch(ctx, event, attendees, images)
}

// validateWorkers keeps a typo'd --workers from silently serializing.
func validateWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", n)
	}
	return nil
}
