package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the command logger: charmbracelet styling, level
// filtering, and "15:04:05.00" timestamps so per-badge pipeline steps
// can be eyeballed against each other in verbose output.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command-level operation (a render, a batch, a
// boundary load) and logs its duration on completion. One goroutine per
// tracker; done is not safe to call concurrently.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing now.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey keeps this package's context keys from colliding with anyone
// else's.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to the context for the command tree to pick up.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, falling back to
// log.Default() so a command run outside RootCommand still logs
// somewhere.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
