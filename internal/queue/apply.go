package queue

import (
	"fmt"
	"sort"

	"github.com/imgsift/imgsift/internal/logging"
)

// ApplyStats reports what an apply pass did.
type ApplyStats struct {
	Deleted int // collections removed from disk
	Moved   int // collections moved into their destination
	Copied  int // collections copied into their destination
	Cleaned int // stale overwritten sources removed after a move
}

// Apply commits every staged decision to the filesystem and clears the
// decision state. Skipped collections are untouched; Requeue handles them.
//
// Deletions run first. Then, destination by destination in sorted order,
// the most recent selection wins: anything already at the destination is
// removed first (a directory is never merged into), the winning source is
// moved or copied in, and in move mode the stale sources it overrode are
// removed from disk as well. In copy mode stale sources were never going to
// leave their original location, so they stay.
//
// The first filesystem failure aborts the pass with the offending path and
// operation wrapped in the error. Destinations already committed have been
// cleared from the queue, so the caller may retry the same call after
// intervening without repeating completed work.
func (q *Queue) Apply(deleteOriginal bool) (ApplyStats, error) {
	var stats ApplyStats

	for len(q.deleted) > 0 {
		item := q.deleted[len(q.deleted)-1]
		if err := q.fs.RemoveAll(item.Path); err != nil {
			return stats, fmt.Errorf("failed to delete %s: %w", item.Path, err)
		}
		q.deleted = q.deleted[:len(q.deleted)-1]
		stats.Deleted++
	}

	for _, destination := range q.sortedDestinations() {
		if err := q.applyDestination(destination, deleteOriginal, &stats); err != nil {
			return stats, err
		}
		delete(q.selected, destination)
	}

	q.clearHistory()
	logging.Info("apply finished",
		logging.Int("deleted", stats.Deleted),
		logging.Int("moved", stats.Moved),
		logging.Int("copied", stats.Copied),
		logging.Int("cleaned", stats.Cleaned))
	return stats, nil
}

func (q *Queue) sortedDestinations() []string {
	destinations := make([]string, 0, len(q.selected))
	for destination := range q.selected {
		destinations = append(destinations, destination)
	}
	sort.Strings(destinations)
	return destinations
}

func (q *Queue) applyDestination(destination string, deleteOriginal bool, stats *ApplyStats) error {
	stack := q.selected[destination]
	source := stack[len(stack)-1]
	stale := stack[:len(stack)-1]

	exists, err := q.fs.Exists(destination)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", destination, err)
	}
	if exists {
		if err := q.fs.RemoveAll(destination); err != nil {
			return fmt.Errorf("failed to clear %s: %w", destination, err)
		}
	}

	if !deleteOriginal {
		if err := q.fs.Copy(source.Path, destination); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", source.Path, destination, err)
		}
		stats.Copied++
		return nil
	}

	if err := q.fs.Move(source.Path, destination); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", source.Path, destination, err)
	}
	stats.Moved++
	for _, overridden := range stale {
		if err := q.fs.RemoveAll(overridden.Path); err != nil {
			return fmt.Errorf("failed to remove stale %s: %w", overridden.Path, err)
		}
		stats.Cleaned++
	}
	return nil
}
