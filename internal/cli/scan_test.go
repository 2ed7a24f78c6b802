package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestScanCommand(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("IMGSIFT_ROOT", filepath.Join(tmpDir, "state"))
	t.Setenv("IMGSIFT_CONFIG", filepath.Join(tmpDir, "state", "config.yaml"))

	source := filepath.Join(tmpDir, "source")
	if err := os.MkdirAll(source, 0755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	for _, name := range []string{"a.jpg", "b.png", "skip.exe"} {
		if err := os.WriteFile(filepath.Join(source, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	t.Run("walks a source tree", func(t *testing.T) {
		rootCmd.SetArgs([]string{"scan", source})
		var out, errOut bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&errOut)

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v, stderr: %s", err, errOut.String())
		}
	})

	t.Run("fails on a missing source", func(t *testing.T) {
		rootCmd.SetArgs([]string{"scan", filepath.Join(tmpDir, "missing")})
		var out, errOut bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&errOut)

		if err := rootCmd.Execute(); err == nil {
			t.Error("expected an error for a missing source root")
		}
	})
}
