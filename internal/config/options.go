package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds the session defaults that may be set in the config file.
// Command-line flags override anything loaded from disk.
type Options struct {
	// DeleteOriginal moves files into the destination instead of copying.
	DeleteOriginal bool `yaml:"delete_original"`

	// Inclusive queues files of unsupported types too.
	Inclusive bool `yaml:"inclusive"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// Log is the file debug output is written to. Empty falls back to
	// imgsift.log under the config directory.
	Log string `yaml:"log"`

	// Recursive descends into source subdirectories when queueing.
	Recursive bool `yaml:"recursive"`

	// RecycleQueue requeues skipped items when the end of the queue is
	// reached instead of prompting.
	RecycleQueue bool `yaml:"recycle_queue"`

	// Threshold is the number of consecutive deletes after which the
	// delete confirmation prompt is hidden.
	Threshold int `yaml:"threshold"`

	// SortBy is the queue sort criterion: atime, mtime, name, size or
	// random.
	SortBy string `yaml:"sort_by"`

	// SortOrder is ascending or descending.
	SortOrder string `yaml:"sort_order"`

	// Patterns are regular expressions naming folders to queue as one item.
	Patterns []string `yaml:"patterns"`

	// Ignore are regular expressions naming files and folders to leave out.
	Ignore []string `yaml:"ignore"`
}

// DefaultOptions returns the built-in session defaults.
func DefaultOptions() Options {
	return Options{
		Threshold: 2,
		SortBy:    "name",
		SortOrder: "ascending",
	}
}

// LoadOptions reads the config file at path layered over the built-in
// defaults. A missing file is not an error; the defaults are returned.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return opts, nil
}
