package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/imgsift/imgsift/internal/collection"
	"github.com/imgsift/imgsift/internal/logging"
)

// WalkOptions controls how Add turns a filesystem root into queued
// collections.
type WalkOptions struct {
	// Recursive descends into subdirectories that no pattern claimed.
	Recursive bool
	// Inclusive queues files of unsupported types too.
	Inclusive bool
	// CollectionPatterns name directories to queue as single units.
	CollectionPatterns []*regexp.Regexp
	// IgnorePatterns name files and directories to leave out entirely.
	IgnorePatterns []*regexp.Regexp
}

// CompilePatterns compiles user-supplied expressions so that each must
// match an entry name in full, the way the flags document them.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		p, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Add walks root and appends eligible entries to the pending queue.
//
// Directories whose name matches an ignore pattern are dropped with their
// whole subtree. Directories whose name matches a collection pattern are
// queued as one unit and not descended; the pattern wins over recursion.
// Any other directory is descended only when opts.Recursive is set. Files
// are queued individually when no ignore pattern matches and either the
// file type is supported or opts.Inclusive admits it. A root that is itself
// a file is queued under the same rules.
//
// A missing or unreadable root is an error. Failures on entries inside the
// walk are logged and skipped, since the walk is best effort over many
// independent entries.
func (q *Queue) Add(root string, opts WalkOptions) error {
	root = expandUser(root)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", root, err)
	}

	if !info.IsDir() {
		name := filepath.Base(root)
		if matchAny(opts.IgnorePatterns, name) {
			return nil
		}
		if opts.Inclusive || collection.IsSupported(filepath.Ext(name)) {
			q.appendCollection(root, opts.Inclusive)
		}
		return nil
	}

	q.walkDir(root, opts)
	return nil
}

func (q *Queue) walkDir(dir string, opts WalkOptions) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Warn("skipping unreadable directory",
			logging.String("path", dir), logging.Err(err))
		return
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			subdirs = append(subdirs, name)
			continue
		}
		if matchAny(opts.IgnorePatterns, name) {
			continue
		}
		if opts.Inclusive || collection.IsSupported(filepath.Ext(name)) {
			q.appendCollection(filepath.Join(dir, name), opts.Inclusive)
		}
	}

	for _, name := range subdirs {
		switch {
		case matchAny(opts.IgnorePatterns, name):
		case matchAny(opts.CollectionPatterns, name):
			q.appendCollection(filepath.Join(dir, name), opts.Inclusive)
		case opts.Recursive:
			q.walkDir(filepath.Join(dir, name), opts)
		}
	}
}

func (q *Queue) appendCollection(path string, inclusive bool) {
	c, err := collection.Load(path, inclusive)
	if err != nil {
		logging.Warn("skipping unreadable entry",
			logging.String("path", path), logging.Err(err))
		return
	}
	q.pending = append(q.pending, c)
}

func matchAny(patterns []*regexp.Regexp, name string) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// expandUser resolves a leading ~ the way shells resolve unquoted paths.
func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
