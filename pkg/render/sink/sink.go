// Package sink serializes finished badge compositions.
//
// Two sinks ship with the CLI: an SVG compositor producing a print
// preview of the full 3"x4" badge, and a JSON sink emitting the raw
// composition for downstream render engines. Both write one file per
// attendee under an event directory.
package sink

import (
	"os"
	"path/filepath"

	"github.com/badgeforge/badgeforge/pkg/errors"
)

// outputPath builds <dir>/<event>/<attendee>.<ext> and ensures the
// directory exists.
func outputPath(dir, eventID, attendeeID, ext string) (string, error) {
	eventDir := filepath.Join(dir, eventID)
	if err := os.MkdirAll(eventDir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output dir %s", eventDir)
	}
	return filepath.Join(eventDir, attendeeID+"."+ext), nil
}
