// Package collection models one queued unit of triage: a single file, or a
// directory whose eligible children are browsed together as one set.
//
// A collection captures its sort metadata (size, timestamps, name) once at
// load time and keeps a cursor over its member files. Decoded previews are
// cached per member so a session can flip back and forth cheaply.
package collection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/imgsift/imgsift/internal/fsops"
)

// Kind classifies a member file by its extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Extension sets are lower-case without the leading dot and disjoint. The
// image set mirrors the decoders the preview pipeline registers.
var (
	imageExtensions = map[string]bool{
		"bmp":  true,
		"gif":  true,
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"tif":  true,
		"tiff": true,
		"webp": true,
	}
	textExtensions = map[string]bool{
		"txt":  true,
		"json": true,
		"xml":  true,
		"html": true,
		"md":   true,
	}
)

// KindOf classifies a file extension. The leading dot is optional and the
// match is case-insensitive.
func KindOf(ext string) Kind {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch {
	case imageExtensions[ext]:
		return KindImage
	case textExtensions[ext]:
		return KindText
	default:
		return KindUnknown
	}
}

// IsSupported reports whether files with this extension are queued by
// default (without the inclusive flag).
func IsSupported(ext string) bool {
	return KindOf(ext) != KindUnknown
}

// NoFilesName is shown in place of a member name when a collection has no
// eligible files.
const NoFilesName = "This collection has no files of a supported type."

// Collection is one queued unit: a plain file, or a directory treated as a
// single set. Exported fields are populated by Load/Reload and read-only to
// callers; the cursor moves only through Next and Prev.
type Collection struct {
	Path       string
	IsDir      bool
	Members    []string
	SizeBytes  int64
	AccessTime time.Time
	ModTime    time.Time
	Name       string

	selected int
	cache    map[string]cacheEntry
}

// Load creates a collection from a file or directory path.
func Load(path string, inclusive bool) (*Collection, error) {
	c := &Collection{}
	if err := c.Reload(path, inclusive); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload repopulates the collection in place from a new path, resetting the
// cursor and dropping any cached previews. Collision previews reuse a single
// spare collection through this.
//
// For a directory, a child is a member when inclusive is set or its
// extension is supported; SizeBytes sums every non-directory child either
// way. Nested directories are not descended.
func (c *Collection) Reload(path string, inclusive bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	c.Path = path
	c.Name = filepath.Base(path)
	c.ModTime = info.ModTime()
	c.AccessTime = fsops.AccessTime(info)
	c.IsDir = info.IsDir()
	c.Members = c.Members[:0]
	c.selected = 0
	c.cache = nil

	if !c.IsDir {
		c.SizeBytes = info.Size()
		c.Members = append(c.Members, path)
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	c.SizeBytes = 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		childInfo, err := entry.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", filepath.Join(path, entry.Name()), err)
		}
		c.SizeBytes += childInfo.Size()
		if inclusive || IsSupported(filepath.Ext(entry.Name())) {
			c.Members = append(c.Members, filepath.Join(path, entry.Name()))
		}
	}
	// ReadDir returns entries in name order, which keeps sequential sets
	// bearable to flip through.
	return nil
}

// Next advances the cursor, wrapping past the last member. Calling it on an
// empty collection is a caller bug: guard with len(Members) first.
func (c *Collection) Next() {
	if len(c.Members) == 0 {
		panic("collection: Next on empty collection")
	}
	c.selected = (c.selected + 1) % len(c.Members)
}

// Prev retreats the cursor, wrapping before the first member. Calling it on
// an empty collection is a caller bug: guard with len(Members) first.
func (c *Collection) Prev() {
	if len(c.Members) == 0 {
		panic("collection: Prev on empty collection")
	}
	c.selected = (c.selected + len(c.Members) - 1) % len(c.Members)
}

// Kind classifies the selected member. KindUnknown on an empty collection.
func (c *Collection) Kind() Kind {
	if len(c.Members) == 0 {
		return KindUnknown
	}
	return KindOf(filepath.Ext(c.Members[c.selected]))
}

// MemberName returns the selected member's base name, or a fixed sentinel
// when the collection has no members.
func (c *Collection) MemberName() string {
	if len(c.Members) == 0 {
		return NoFilesName
	}
	return filepath.Base(c.Members[c.selected])
}

// PositionText describes the cursor position, e.g. "file 2 of 14".
func (c *Collection) PositionText() string {
	if !c.IsDir {
		return "single file"
	}
	return fmt.Sprintf("file %d of %d", c.selected+1, len(c.Members))
}

// HumanSize renders the collection's total size with binary prefixes.
func (c *Collection) HumanSize() string {
	return HumanSize(c.SizeBytes)
}
