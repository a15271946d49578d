package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/badgeforge/badgeforge/pkg/badge"
	"github.com/badgeforge/badgeforge/pkg/errors"
)

// Result records the outcome of one badge render.
type Result struct {
	AttendeeID string
	RenderID   string
	Err        error
	Duration   time.Duration
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Results  []Result
	Rendered int
	Failed   int
	Duration time.Duration
}

// Runner executes compositions and fans them out to sinks.
//
// The Runner is stateless between calls; multiple goroutines may share
// one Runner. Batch concurrency applies to composition and sink writes;
// the geocoder serializes its own network calls internally, so extra
// workers never violate its rate limit.
type Runner struct {
	Composer *Composer
	Sinks    []Sink
	Workers  int
	Logger   *log.Logger

	// OnResult, if set, is called after each badge finishes. Used by the
	// CLI progress display. Called from worker goroutines.
	OnResult func(Result)
}

// NewRunner creates a runner writing to the given sinks.
func NewRunner(composer *Composer, sinks []Sink, workers int, logger *log.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Composer: composer, Sinks: sinks, Workers: workers, Logger: logger}
}

// Execute renders one badge: compose, then write to every sink. Sink
// errors abort the badge; the first failing sink wins.
func (r *Runner) Execute(ctx context.Context, event *badge.Event, att *badge.Attendee, interestsImage string) (*Composition, error) {
	comp, err := r.Composer.Compose(ctx, event, att, interestsImage)
	if err != nil {
		return nil, err
	}
	for _, sink := range r.Sinks {
		if err := sink.Write(ctx, comp); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err,
				"sink %s failed for attendee %s", sink.Name(), att.ID)
		}
	}
	return comp, nil
}

// RunBatch renders every attendee, distributing work across the
// configured number of workers. Per-badge failures are collected, not
// fatal: one attendee's bad data never stops the batch.
func (r *Runner) RunBatch(ctx context.Context, event *badge.Event, attendees []*badge.Attendee, interestsImages map[string]string) BatchSummary {
	start := time.Now()
	jobs := make(chan *badge.Attendee)
	results := make([]Result, 0, len(attendees))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for range r.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for att := range jobs {
				res := r.renderOne(ctx, event, att, interestsImages[att.ID])
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				if r.OnResult != nil {
					r.OnResult(res)
				}
			}
		}()
	}

	for _, att := range attendees {
		select {
		case jobs <- att:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	summary := BatchSummary{Results: results, Duration: time.Since(start)}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Rendered++
		}
	}
	r.Logger.Info("batch finished",
		"event", event.ID,
		"rendered", summary.Rendered,
		"failed", summary.Failed,
		"duration", summary.Duration)
	return summary
}

func (r *Runner) renderOne(ctx context.Context, event *badge.Event, att *badge.Attendee, interestsImage string) Result {
	start := time.Now()
	comp, err := r.Execute(ctx, event, att, interestsImage)

	res := Result{AttendeeID: att.ID, Err: err, Duration: time.Since(start)}
	if comp != nil {
		res.RenderID = comp.RenderID
	}
	if err != nil {
		r.Logger.Error("badge failed", "attendee", att.DisplayLabel(), "err", err)
	}
	return res
}
