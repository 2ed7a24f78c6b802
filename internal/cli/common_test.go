package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/imgsift/imgsift/internal/config"
)

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"simple map", map[string]string{"key": "value"}},
		{"array", []string{"a", "b", "c"}},
		{"scan entries", []scanEntry{{Name: "a.jpg", Kind: "image", Size: "1 KiB", Members: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatJSON(tt.input)
			if err != nil {
				t.Fatalf("formatJSON() error = %v", err)
			}
			var v interface{}
			if err := json.Unmarshal([]byte(got), &v); err != nil {
				t.Errorf("formatJSON() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestSessionOptions_FlagsOverrideConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "threshold: 9\nsort_by: size\nrecursive: true\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("IMGSIFT_CONFIG", configPath)
	t.Setenv("IMGSIFT_ROOT", tmpDir)

	// Only --threshold is set on the command line.
	if err := rootCmd.ParseFlags([]string{"--threshold", "4"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	defer func() {
		f := rootCmd.Flags().Lookup("threshold")
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}()

	opts, err := sessionOptions(rootCmd)
	if err != nil {
		t.Fatalf("sessionOptions() error = %v", err)
	}

	if opts.Threshold != 4 {
		t.Errorf("Threshold = %d, want the flag value 4", opts.Threshold)
	}
	if opts.SortBy != "size" {
		t.Errorf("SortBy = %q, want the config file value %q", opts.SortBy, "size")
	}
	if !opts.Recursive {
		t.Error("Recursive = false, want the config file value true")
	}
	if opts.SortOrder != "ascending" {
		t.Errorf("SortOrder = %q, want the built-in default", opts.SortOrder)
	}
}

func TestBuildWalkOptions(t *testing.T) {
	opts := config.Options{
		Recursive: true,
		Inclusive: true,
		Patterns:  []string{`set_\d+`},
		Ignore:    []string{`\..*`},
	}

	walkOpts, err := buildWalkOptions(opts)
	if err != nil {
		t.Fatalf("buildWalkOptions() error = %v", err)
	}
	if !walkOpts.Recursive || !walkOpts.Inclusive {
		t.Error("walk flags not carried over")
	}
	if len(walkOpts.CollectionPatterns) != 1 || len(walkOpts.IgnorePatterns) != 1 {
		t.Errorf("patterns not compiled: %d collection, %d ignore",
			len(walkOpts.CollectionPatterns), len(walkOpts.IgnorePatterns))
	}
	if !walkOpts.CollectionPatterns[0].MatchString("set_01") {
		t.Error("collection pattern does not match set_01")
	}
	if walkOpts.CollectionPatterns[0].MatchString("subset_01x") {
		t.Error("collection pattern matched a partial name")
	}
}

func TestBuildWalkOptions_BadPattern(t *testing.T) {
	if _, err := buildWalkOptions(config.Options{Patterns: []string{"[oops"}}); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
	if _, err := buildWalkOptions(config.Options{Ignore: []string{"[oops"}}); err == nil {
		t.Error("expected an error for an invalid ignore pattern")
	}
}
