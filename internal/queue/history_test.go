package queue

import (
	"testing"
)

func TestRecordReusesUndoneNodeInPlace(t *testing.T) {
	a := col("/src/a.jpg", 1, stamp)
	b := col("/src/b.jpg", 2, stamp)
	q, _ := newTestQueue(a, b)

	q.Skip()
	first := q.cursor
	q.Undo()

	q.Delete()
	if q.cursor != first {
		t.Error("record() allocated a fresh node instead of reusing the undone one")
	}
	if q.cursor.kind != actionDelete {
		t.Errorf("reused node kind = %v, want actionDelete", q.cursor.kind)
	}
	if q.cursor.next != nil {
		t.Error("reused node still points at the dropped redo branch")
	}
}

func TestRecordTruncatesDeeperRedoBranch(t *testing.T) {
	q, _ := newTestQueue(
		col("/src/a.jpg", 1, stamp),
		col("/src/b.jpg", 2, stamp),
		col("/src/c.jpg", 3, stamp),
	)

	q.Skip()
	q.Skip()
	q.Skip()
	q.Undo()
	q.Undo()
	q.Undo()

	q.Delete()
	if q.start.next != q.cursor {
		t.Error("new decision not chained directly after the start sentinel")
	}
	if q.cursor.next != nil {
		t.Error("redo branch survived a fresh decision")
	}
	if q.Redo() {
		t.Error("Redo() = true into a truncated branch")
	}
}

func TestSelectTargetTravelsWithHistoryNode(t *testing.T) {
	a := col("/src/a.jpg", 1, stamp)
	q, _ := newTestQueue(a)

	if ok, err := q.Select("/dst/sun/a.jpg", false); err != nil || !ok {
		t.Fatalf("Select() = (%v, %v), want (true, nil)", ok, err)
	}
	if q.cursor.kind != actionSelect || q.cursor.target != "/dst/sun/a.jpg" {
		t.Errorf("cursor = {kind: %v, target: %q}, want an actionSelect for /dst/sun/a.jpg",
			q.cursor.kind, q.cursor.target)
	}

	q.Undo()
	q.Skip()
	if q.cursor.target != "" {
		t.Errorf("reused node kept the stale target %q", q.cursor.target)
	}
}

func TestClearHistoryRewindsToSentinel(t *testing.T) {
	a := col("/src/a.jpg", 1, stamp)
	b := col("/src/b.jpg", 2, stamp)
	q, _ := newTestQueue(a, b)

	q.Skip()
	q.Skip()
	q.clearHistory()

	if q.cursor != q.start {
		t.Error("cursor not rewound to the start sentinel")
	}
	if q.start.next != nil {
		t.Error("history chain survived clearHistory")
	}
	if q.Undo() {
		t.Error("Undo() = true on a cleared history")
	}
	if q.Redo() {
		t.Error("Redo() = true on a cleared history")
	}
}
