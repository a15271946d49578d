package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/badgeforge/badgeforge/pkg/config"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "svg,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid json", []string{"json"}, false},
		{"valid multiple", []string{"svg", "json"}, false},
		{"invalid format", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	if err := validateWorkers(4); err != nil {
		t.Errorf("validateWorkers(4) = %v", err)
	}
	if err := validateWorkers(0); err == nil {
		t.Error("validateWorkers(0) should fail")
	}
}

func TestInterestsImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a1.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := interestsImage(dir, "a1"); got != path {
		t.Errorf("interestsImage = %q, want %q", got, path)
	}
	if got := interestsImage(dir, "a2"); got != "" {
		t.Errorf("missing collage should be empty, got %q", got)
	}
	if got := interestsImage("", "a1"); got != "" {
		t.Errorf("empty dir should be empty, got %q", got)
	}
}

func TestNewCacheFallsBackToNull(t *testing.T) {
	// noCache forces the null backend regardless of configuration.
	c := newCache(config.CacheConfig{Dir: t.TempDir(), RedisAddr: "localhost:0"}, true)
	if c == nil {
		t.Fatal("newCache returned nil")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"render":     false,
		"batch":      false,
		"serve":      false,
		"location":   false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
