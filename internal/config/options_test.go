package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Threshold != 2 {
		t.Errorf("Threshold = %d, want 2", opts.Threshold)
	}
	if opts.SortBy != "name" {
		t.Errorf("SortBy = %q, want %q", opts.SortBy, "name")
	}
	if opts.SortOrder != "ascending" {
		t.Errorf("SortOrder = %q, want %q", opts.SortOrder, "ascending")
	}
	if opts.DeleteOriginal || opts.Recursive || opts.RecycleQueue {
		t.Error("boolean defaults should all be off")
	}
}

func TestLoadOptions(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		opts, err := LoadOptions(filepath.Join(t.TempDir(), "config.yaml"))
		if err != nil {
			t.Fatalf("LoadOptions failed: %v", err)
		}
		def := DefaultOptions()
		if opts.Threshold != def.Threshold || opts.SortBy != def.SortBy || opts.SortOrder != def.SortOrder {
			t.Errorf("LoadOptions = %+v, want defaults %+v", opts, def)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
delete_original: true
threshold: 5
sort_by: mtime
ignore:
  - "\\..*"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		opts, err := LoadOptions(path)
		if err != nil {
			t.Fatalf("LoadOptions failed: %v", err)
		}
		if !opts.DeleteOriginal {
			t.Error("DeleteOriginal not read from file")
		}
		if opts.Threshold != 5 {
			t.Errorf("Threshold = %d, want 5", opts.Threshold)
		}
		if opts.SortBy != "mtime" {
			t.Errorf("SortBy = %q, want %q", opts.SortBy, "mtime")
		}
		if len(opts.Ignore) != 1 || opts.Ignore[0] != `\..*` {
			t.Errorf("Ignore = %v, want the dotfile pattern", opts.Ignore)
		}
		if opts.SortOrder != "ascending" {
			t.Errorf("SortOrder = %q, untouched keys should keep their defaults", opts.SortOrder)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("threshold: [not an int"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadOptions(path); err == nil {
			t.Fatal("LoadOptions accepted a malformed file")
		}
	})
}
