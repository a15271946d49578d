package sink

import (
	"context"
	"encoding/json"
	"os"

	"github.com/badgeforge/badgeforge/pkg/errors"
	"github.com/badgeforge/badgeforge/pkg/pipeline"
)

// JSONSink writes each composition as an indented JSON document, the
// hand-off format for external render engines (PDF, HTML).
type JSONSink struct {
	dir string
}

// NewJSONSink creates a sink writing under dir.
func NewJSONSink(dir string) *JSONSink {
	return &JSONSink{dir: dir}
}

// Name identifies the sink in logs.
func (s *JSONSink) Name() string { return "json" }

// Write serializes the composition to <dir>/<event>/<attendee>.json.
func (s *JSONSink) Write(_ context.Context, comp *pipeline.Composition) error {
	path, err := outputPath(s.dir, comp.EventID, comp.AttendeeID, "json")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(comp, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal composition %s", comp.RenderID)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

var _ pipeline.Sink = (*JSONSink)(nil)
