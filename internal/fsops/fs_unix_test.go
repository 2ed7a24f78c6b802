//go:build unix

package fsops

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

// TestRealFS_Move_CrossDeviceFallsBackToCopy injects a rename that fails
// with EXDEV and verifies the move degrades to copy + remove.
func TestRealFS_Move_CrossDeviceFallsBackToCopy(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "other-device", "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0644); err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}

	orig := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}
	defer func() { renameFunc = orig }()

	if err := fs.Move(src, dst); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be removed after cross-device move")
	}
	readContent, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(readContent) != "payload" {
		t.Errorf("destination content = %q, want %q", readContent, "payload")
	}
}
