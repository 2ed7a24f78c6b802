package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/queue"
)

// A failed apply keeps the unfinished work staged; fixing the problem and
// calling Apply again must finish the job without repeating what already
// committed.
func TestApplyFailureIsRetryable(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "camera")
	dest := filepath.Join(root, "library")
	writeTree(t, src, map[string]string{
		"alpha.jpg": "first",
		"beta.jpg":  "second",
	})
	writeTree(t, dest, map[string]string{
		"keep/":  "",
		"trips/": "",
	})

	q := queue.New(fsops.NewRealFS())
	if err := q.Add(src, queue.WalkOptions{}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	q.Sort(queue.ByName, false)

	if ok, err := q.Select(filepath.Join(dest, "keep", "alpha.jpg"), false); !ok || err != nil {
		t.Fatalf("Select alpha: ok=%v err=%v", ok, err)
	}
	if ok, err := q.Select(filepath.Join(dest, "trips", "beta.jpg"), false); !ok || err != nil {
		t.Fatalf("Select beta: ok=%v err=%v", ok, err)
	}

	// sabotage the second move; keep/ sorts before trips/, so the first
	// commits before the pass trips over this
	betaSource := filepath.Join(src, "beta.jpg")
	if err := os.Remove(betaSource); err != nil {
		t.Fatalf("remove: %v", err)
	}

	stats, err := q.Apply(true)
	if err == nil {
		t.Fatal("Apply should fail on the missing source")
	}
	if !strings.Contains(err.Error(), "beta.jpg") {
		t.Errorf("err = %v, want the offending path in it", err)
	}
	if want := (queue.ApplyStats{Moved: 1}); stats != want {
		t.Errorf("partial stats = %+v, want %+v", stats, want)
	}
	if _, err := os.Stat(filepath.Join(dest, "keep", "alpha.jpg")); err != nil {
		t.Errorf("the committed move should be on disk: %v", err)
	}
	if q.StagedLen() != 1 {
		t.Errorf("StagedLen = %d, want the failed move still staged", q.StagedLen())
	}

	// put the source back and retry
	writeTree(t, src, map[string]string{"beta.jpg": "second"})

	stats, err = q.Apply(true)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if want := (queue.ApplyStats{Moved: 1}); stats != want {
		t.Errorf("retry stats = %+v, want only the remaining move", stats)
	}

	expectTree(t, src, map[string]string{})
	expectTree(t, dest, map[string]string{
		"keep/alpha.jpg": "first",
		"trips/beta.jpg": "second",
	})
	if q.StagedLen() != 0 {
		t.Errorf("StagedLen = %d, want nothing left staged", q.StagedLen())
	}
}

// Deletions commit one at a time, so a failure mid-pass loses none of the
// remaining staged deletions.
func TestApplyDeletesBeforeMoves(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "camera")
	dest := filepath.Join(root, "library")
	writeTree(t, src, map[string]string{
		"dud.jpg":  "blurry",
		"good.jpg": "sharp",
	})
	writeTree(t, dest, map[string]string{"keep/": ""})

	q := queue.New(fsops.NewRealFS())
	if err := q.Add(src, queue.WalkOptions{}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	q.Sort(queue.ByName, false)

	if !q.Delete() {
		t.Fatal("Delete refused")
	}
	if ok, err := q.Select(filepath.Join(dest, "keep", "good.jpg"), false); !ok || err != nil {
		t.Fatalf("Select: ok=%v err=%v", ok, err)
	}

	stats, err := q.Apply(true)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := (queue.ApplyStats{Deleted: 1, Moved: 1}); stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	expectTree(t, src, map[string]string{})
}

// An unreadable entry inside a source must not abort the whole walk.
func TestWalkSurvivesUnreadableEntries(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits do not bind root")
	}
	root := t.TempDir()
	src := filepath.Join(root, "camera")
	writeTree(t, src, map[string]string{
		"fine.jpg":        "ok",
		"locked/held.jpg": "unreachable",
	})
	if err := os.Chmod(filepath.Join(src, "locked"), 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(filepath.Join(src, "locked"), 0755)
	})

	patterns, err := queue.CompilePatterns([]string{`locked`})
	if err != nil {
		t.Fatalf("CompilePatterns: %v", err)
	}
	q := queue.New(fsops.NewRealFS())
	if err := q.Add(src, queue.WalkOptions{CollectionPatterns: patterns}); err != nil {
		t.Fatalf("Add should shrug off the unreadable directory: %v", err)
	}
	q.Sort(queue.ByName, false)

	if q.Len() != 1 || q.Peek().Name != "fine.jpg" {
		t.Errorf("Len = %d front = %v, want just the readable file",
			q.Len(), q.Peek())
	}
}
