package layout

import (
	"testing"

	"github.com/badgeforge/badgeforge/pkg/config"
	"github.com/badgeforge/badgeforge/pkg/text"
)

func newTestMeasurer(t *testing.T) *text.Measurer {
	t.Helper()
	m, err := text.NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	return m
}

func testGeometry() (config.Badge, config.Fonts) {
	cfg := config.Default()
	return cfg.Badge, cfg.Fonts
}
