// Package queue implements the triage engine behind the interactive
// session: an ordered queue of pending collections, the skip and delete
// stacks, per-destination selection stacks, a linked undo/redo history, and
// the deferred apply pass that commits every decision to the filesystem in
// one sweep.
//
// Key behaviors:
//   - Decisions are staged, never executed eagerly. Until Apply runs, every
//     skip, delete and select is pure bookkeeping and can be undone.
//   - The pending slice keeps its user-facing front at the tail, so serving
//     an item is a pop and undoing one is a push.
//   - Selecting the same destination twice stacks the claims; the most
//     recent one wins at apply time.
package queue

import (
	"path/filepath"

	"github.com/imgsift/imgsift/internal/collection"
	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/logging"
)

// Queue tracks pending collections and every decision taken on them until
// Apply commits the decisions to the filesystem.
//
// A Queue is owned by one caller at a time; no method is safe for
// concurrent use.
type Queue struct {
	fs fsops.FS

	pending  []*collection.Collection
	skipped  []*collection.Collection
	deleted  []*collection.Collection
	selected map[string][]*collection.Collection

	start  *historyNode
	cursor *historyNode
}

// New creates an empty queue that performs collision checks and the apply
// pass through fs.
func New(fs fsops.FS) *Queue {
	start := &historyNode{kind: actionStart}
	return &Queue{
		fs:       fs,
		selected: make(map[string][]*collection.Collection),
		start:    start,
		cursor:   start,
	}
}

// Len returns the number of collections still waiting for a decision.
func (q *Queue) Len() int { return len(q.pending) }

// SkippedLen returns the number of collections set aside by Skip.
func (q *Queue) SkippedLen() int { return len(q.skipped) }

// StagedLen returns the number of decisions an Apply would commit: staged
// deletions plus staged selections. Skipped collections are not counted,
// Apply leaves them alone.
func (q *Queue) StagedLen() int {
	staged := len(q.deleted)
	for _, stack := range q.selected {
		staged += len(stack)
	}
	return staged
}

// Pending returns the queued collections in the order they will be served.
func (q *Queue) Pending() []*collection.Collection {
	out := make([]*collection.Collection, 0, len(q.pending))
	for i := len(q.pending) - 1; i >= 0; i-- {
		out = append(out, q.pending[i])
	}
	return out
}

// Peek returns the front collection without removing it, or nil when the
// queue is empty.
func (q *Queue) Peek() *collection.Collection {
	if len(q.pending) == 0 {
		return nil
	}
	return q.pending[len(q.pending)-1]
}

// Skip moves the front collection onto the skipped stack. It returns false
// without recording history when the queue is empty.
func (q *Queue) Skip() bool {
	if !q.skipFront() {
		return false
	}
	q.record(actionSkip, "")
	return true
}

// Delete marks the front collection for removal at apply time. It returns
// false without recording history when the queue is empty.
func (q *Queue) Delete() bool {
	if !q.deleteFront() {
		return false
	}
	q.record(actionDelete, "")
	return true
}

// Select claims destination for the front collection. With overwrite false
// a destination that is already claimed or occupied on disk fails with a
// *PathCollisionError and nothing moves. It returns false without recording
// history when the queue is empty.
func (q *Queue) Select(destination string, overwrite bool) (bool, error) {
	ok, err := q.selectFront(destination, overwrite)
	if err != nil || !ok {
		return false, err
	}
	q.record(actionSelect, destination)
	return true, nil
}

// IsCollision reports whether destination is already claimed by a pending
// selection or occupied on disk. Nothing is mutated.
func (q *Queue) IsCollision(destination string) bool {
	if _, ok := q.selected[destination]; ok {
		return true
	}
	exists, err := q.fs.Exists(destination)
	if err != nil {
		logging.Warn("collision check failed",
			logging.String("path", destination), logging.Err(err))
		return false
	}
	return exists
}

// ResolvePreviewSource returns the collection whose content currently wins
// at destination: the most recent pending claim when one exists. ok is
// false when no claim is pending, meaning whatever sits on disk at
// destination is what a new selection would overwrite.
func (q *Queue) ResolvePreviewSource(destination string) (*collection.Collection, bool) {
	stack, ok := q.selected[destination]
	if !ok {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// Undo reverses the action under the history cursor and steps the cursor
// back. It returns false when there is nothing to undo.
func (q *Queue) Undo() bool {
	switch q.cursor.kind {
	case actionStart:
		return false
	case actionSkip:
		q.unskip()
	case actionDelete:
		q.undelete()
	case actionSelect:
		q.unselect(q.cursor.target)
	}
	q.cursor = q.cursor.prev
	return true
}

// CanRedo reports whether an undone action lies ahead of the history
// cursor.
func (q *Queue) CanRedo() bool { return q.cursor.next != nil }

// Redo advances the cursor and re-executes the action it lands on. A select
// re-runs with overwrite forced: its collision check already passed when
// the action was first taken. It returns false when no undone action lies
// ahead.
func (q *Queue) Redo() bool {
	if q.cursor.next == nil {
		return false
	}
	q.cursor = q.cursor.next
	switch q.cursor.kind {
	case actionSkip:
		q.skipFront()
	case actionDelete:
		q.deleteFront()
	case actionSelect:
		q.selectFront(q.cursor.target, true)
	}
	return true
}

// Requeue clears the history and moves every skipped collection back into
// the pending queue behind the items still waiting. A non-empty criterion
// re-sorts the merged queue.
func (q *Queue) Requeue(criterion Criterion, descending bool) {
	q.clearHistory()
	q.pending = append(q.skipped, q.pending...)
	q.skipped = nil
	if criterion != "" {
		q.Sort(criterion, descending)
	}
}

// Progress is the fraction of ever-queued collections that have received a
// decision. An empty queue reports 1.0.
func (q *Queue) Progress() float64 {
	decided := len(q.skipped) + len(q.deleted)
	for _, stack := range q.selected {
		decided += len(stack)
	}
	total := len(q.pending) + decided
	if total == 0 {
		return 1.0
	}
	return 1.0 - float64(len(q.pending))/float64(total)
}

// StatusLabel describes the action sitting ahead of the history cursor, the
// one Redo would re-apply: "skipped", "deleted", or the name of the folder
// a selection sent the collection into. With no undone action ahead it
// reports "unsorted".
func (q *Queue) StatusLabel() string {
	next := q.cursor.next
	if next == nil {
		return "unsorted"
	}
	switch next.kind {
	case actionSkip:
		return "skipped"
	case actionDelete:
		return "deleted"
	case actionSelect:
		return filepath.Base(filepath.Dir(next.target))
	default:
		return "unsorted"
	}
}

func (q *Queue) pop() *collection.Collection {
	item := q.pending[len(q.pending)-1]
	q.pending = q.pending[:len(q.pending)-1]
	return item
}

func (q *Queue) skipFront() bool {
	if len(q.pending) == 0 {
		return false
	}
	q.skipped = append(q.skipped, q.pop())
	return true
}

func (q *Queue) unskip() {
	if len(q.skipped) == 0 {
		return
	}
	q.pending = append(q.pending, q.skipped[len(q.skipped)-1])
	q.skipped = q.skipped[:len(q.skipped)-1]
}

func (q *Queue) deleteFront() bool {
	if len(q.pending) == 0 {
		return false
	}
	q.deleted = append(q.deleted, q.pop())
	return true
}

func (q *Queue) undelete() {
	if len(q.deleted) == 0 {
		return
	}
	q.pending = append(q.pending, q.deleted[len(q.deleted)-1])
	q.deleted = q.deleted[:len(q.deleted)-1]
}

func (q *Queue) selectFront(destination string, overwrite bool) (bool, error) {
	if len(q.pending) == 0 {
		return false, nil
	}
	if !overwrite && q.IsCollision(destination) {
		return false, &PathCollisionError{Destination: destination}
	}
	q.selected[destination] = append(q.selected[destination], q.pop())
	return true, nil
}

func (q *Queue) unselect(destination string) {
	stack, ok := q.selected[destination]
	if !ok {
		return
	}
	q.pending = append(q.pending, stack[len(stack)-1])
	if len(stack) == 1 {
		delete(q.selected, destination)
		return
	}
	q.selected[destination] = stack[:len(stack)-1]
}
