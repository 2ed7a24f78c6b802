package queue

// actionKind tags a history node with the operation it records.
type actionKind int

const (
	actionStart actionKind = iota
	actionSkip
	actionDelete
	actionSelect
)

// historyNode is one link in the doubly-linked undo/redo chain. target holds
// the selection destination for actionSelect and is empty otherwise.
type historyNode struct {
	kind   actionKind
	target string
	prev   *historyNode
	next   *historyNode
}

// record appends an action at the cursor and advances onto it. When an
// undone action sits ahead of the cursor its node is overwritten in place
// and everything beyond it is dropped, so there is never more than one redo
// path.
func (q *Queue) record(kind actionKind, target string) {
	if node := q.cursor.next; node != nil {
		node.kind = kind
		node.target = target
		node.next = nil
		q.cursor = node
		return
	}
	node := &historyNode{kind: kind, target: target, prev: q.cursor}
	q.cursor.next = node
	q.cursor = node
}

// clearHistory drops the whole chain and rewinds the cursor to the start
// sentinel.
func (q *Queue) clearHistory() {
	q.start.next = nil
	q.cursor = q.start
}
