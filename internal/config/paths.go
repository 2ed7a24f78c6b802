// Package config manages imgsift configuration and filesystem paths.
//
// Configuration lives under a single root directory, ~/.imgsift by default,
// holding the config file with session defaults. The root and the config
// file location can be overridden with environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the filesystem paths used by imgsift.
type Paths struct {
	// Root is the base directory for all imgsift data (default: ~/.imgsift)
	Root string

	// Config is the path to the config file with session defaults
	Config string
}

// DefaultPaths returns the default paths for imgsift.
// Paths can be overridden with environment variables:
// - IMGSIFT_ROOT: Override the root directory
// - IMGSIFT_CONFIG: Override the config file location
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("IMGSIFT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".imgsift")
	}

	configFile := os.Getenv("IMGSIFT_CONFIG")
	if configFile == "" {
		configFile = filepath.Join(root, "config.yaml")
	}

	return &Paths{
		Root:   root,
		Config: configFile,
	}, nil
}

// EnsureDirectories creates the root directory if it doesn't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
