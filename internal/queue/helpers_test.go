package queue

import (
	"os"
	"path/filepath"
	"time"

	"github.com/imgsift/imgsift/internal/collection"
	"github.com/imgsift/imgsift/internal/fsops"
)

// testFS tracks files in memory and records every mutating call so tests
// can assert both the final layout and the order of operations.
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
	ops   []string
	fail  map[string]error // "op path" -> injected error
}

var _ fsops.FS = (*testFS)(nil)

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		fail:  make(map[string]error),
	}
}

func (fs *testFS) step(op, path string) error {
	key := op + " " + path
	if err, ok := fs.fail[key]; ok {
		return err
	}
	fs.ops = append(fs.ops, key)
	return nil
}

func (fs *testFS) Exists(path string) (bool, error) {
	if err, ok := fs.fail["exists "+path]; ok {
		return false, err
	}
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) Mkdir(path string, perm os.FileMode) error {
	if err := fs.step("mkdir", path); err != nil {
		return err
	}
	fs.dirs[path] = true
	return nil
}

func (fs *testFS) RemoveAll(path string) error {
	if err := fs.step("removeall", path); err != nil {
		return err
	}
	prefix := path + string(filepath.Separator)
	for p := range fs.files {
		if p == path || (len(p) > len(prefix) && p[:len(prefix)] == prefix) {
			delete(fs.files, p)
		}
	}
	for p := range fs.dirs {
		if p == path || (len(p) > len(prefix) && p[:len(prefix)] == prefix) {
			delete(fs.dirs, p)
		}
	}
	return nil
}

func (fs *testFS) Move(src, dst string) error {
	if err := fs.step("move", src); err != nil {
		return err
	}
	fs.relocate(src, dst, true)
	return nil
}

func (fs *testFS) Copy(src, dst string) error {
	if err := fs.step("copy", src); err != nil {
		return err
	}
	fs.relocate(src, dst, false)
	return nil
}

func (fs *testFS) relocate(src, dst string, removeSource bool) {
	prefix := src + string(filepath.Separator)
	moved := make(map[string][]byte)
	for p, content := range fs.files {
		switch {
		case p == src:
			moved[dst] = content
		case len(p) > len(prefix) && p[:len(prefix)] == prefix:
			moved[dst+string(filepath.Separator)+p[len(prefix):]] = content
		default:
			continue
		}
		if removeSource {
			delete(fs.files, p)
		}
	}
	for p, content := range moved {
		fs.files[p] = content
	}
	if fs.dirs[src] {
		fs.dirs[dst] = true
		if removeSource {
			delete(fs.dirs, src)
		}
	}
}

func (fs *testFS) addFile(path string, content string) {
	fs.files[path] = []byte(content)
}

func (fs *testFS) hasFile(path string) bool {
	_, ok := fs.files[path]
	return ok
}

func (fs *testFS) content(path string) string {
	return string(fs.files[path])
}

// col builds an in-memory collection without touching the filesystem.
func col(path string, size int64, stamp time.Time) *collection.Collection {
	return &collection.Collection{
		Path:       path,
		Name:       filepath.Base(path),
		SizeBytes:  size,
		AccessTime: stamp,
		ModTime:    stamp,
	}
}

// newTestQueue returns a queue over a fresh in-memory filesystem with the
// given collections pending, the last one at the front.
func newTestQueue(items ...*collection.Collection) (*Queue, *testFS) {
	fs := newTestFS()
	q := New(fs)
	q.pending = append(q.pending, items...)
	return q, fs
}
