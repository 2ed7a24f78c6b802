package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgsift/imgsift/internal/collection"
	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/hash"
	"github.com/imgsift/imgsift/internal/logging"
	"github.com/imgsift/imgsift/internal/queue"
)

type loadDoneMsg struct{ queued int }

type loadErrMsg struct{ err error }

type applyDoneMsg struct{ stats queue.ApplyStats }

type applyErrMsg struct {
	stats queue.ApplyStats
	err   error
}

type compareDoneMsg struct {
	target  string
	verdict string
}

// loadCmd walks the source roots off the event loop. The model ignores
// every queue access until the done message lands.
func loadCmd(q *queue.Queue, sources []string, opts queue.WalkOptions, criterion queue.Criterion, descending bool) tea.Cmd {
	return func() tea.Msg {
		for _, source := range sources {
			if err := q.Add(source, opts); err != nil {
				return loadErrMsg{err: err}
			}
		}
		q.Sort(criterion, descending)
		return loadDoneMsg{queued: q.Len()}
	}
}

func applyCmd(q *queue.Queue, deleteOriginal bool) tea.Cmd {
	return func() tea.Msg {
		stats, err := q.Apply(deleteOriginal)
		if err != nil {
			return applyErrMsg{stats: stats, err: err}
		}
		return applyDoneMsg{stats: stats}
	}
}

// compareCmd hashes both sides of a collision off the event loop so the
// overwrite prompt can say whether it would replace identical content. The
// paths are captured up front; nothing here touches the queue.
func compareCmd(h hash.Hasher, target, a, b string) tea.Cmd {
	return func() tea.Msg {
		equal, err := hash.FilesEqual(h, a, b)
		if err != nil {
			return compareDoneMsg{target: target}
		}
		if equal {
			return compareDoneMsg{target: target, verdict: "contents identical"}
		}
		return compareDoneMsg{target: target, verdict: "contents differ"}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.mode == modeLoading || m.mode == modeApplying {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case loadDoneMsg:
		logging.Info("queue loaded", logging.Int("queued", msg.queued))
		m.refreshFolders()
		if m.queue.Len() == 0 {
			m.mode = modeDrained
			return m, nil
		}
		m.mode = modeBrowse
		m.syncFront()
		return m, nil

	case loadErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case applyDoneMsg:
		m.stats = addStats(m.stats, msg.stats)
		m.applied = true
		m.applyErr = nil
		if m.quitAfterApply {
			return m, tea.Quit
		}
		if m.queue.Len() > 0 {
			m.mode = modeBrowse
			m.status = "applied staged decisions"
			return m, nil
		}
		if m.queue.SkippedLen() > 0 {
			m.mode = modeDone
			return m, nil
		}
		return m, tea.Quit

	case applyErrMsg:
		m.stats = addStats(m.stats, msg.stats)
		if msg.stats != (queue.ApplyStats{}) {
			m.applied = true
		}
		m.applyErr = msg.err
		m.mode = modeApplyError
		return m, nil

	case compareDoneMsg:
		// drop verdicts that arrive after their prompt was answered
		if m.mode == modeConfirmOverwrite && msg.target == m.target {
			m.compare = msg.verdict
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeLoading, modeApplying:
		return m, nil
	case modeEditName:
		return m.handleEditName(msg)
	case modeNewFolder:
		return m.handleNewFolder(msg)
	case modeConfirmDelete:
		return m.handleConfirmDelete(msg)
	case modeConfirmOverwrite:
		return m.handleConfirmOverwrite(msg)
	case modeConfirmRedoAll:
		return m.handleConfirmRedoAll(msg)
	case modeConfirmQuit:
		return m.handleConfirmQuit(msg)
	case modeDrained:
		return m.handleDrained(msg)
	case modeApplyError:
		return m.handleApplyError(msg)
	case modeDone:
		return m.handleDone(msg)
	}
	return m.handleBrowse(msg)
}

func (m model) handleBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.queue.StagedLen() > 0 {
			m.mode = modeConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.folderIdx > 0 {
			m.folderIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.folderIdx < len(m.folders)-1 {
			m.folderIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevMember):
		return m.handleFlip(false)

	case key.Matches(msg, m.keys.NextMember):
		return m.handleFlip(true)

	case key.Matches(msg, m.keys.Skip):
		return m.handleSkip()

	case key.Matches(msg, m.keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, m.keys.Select):
		return m.handleSelect()

	case key.Matches(msg, m.keys.EditName):
		m.mode = modeEditName
		m.name.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NewFolder):
		m.mode = modeNewFolder
		m.folderEntry.SetValue("")
		m.folderEntry.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Undo):
		return m.handleUndo()

	case key.Matches(msg, m.keys.Redo):
		return m.handleRedo()

	case key.Matches(msg, m.keys.RedoAll):
		if m.queue.CanRedo() {
			m.mode = modeConfirmRedoAll
		} else {
			m.status = "nothing to redo"
		}
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		if m.zoom < 8 {
			m.zoom *= 1.25
		}
		return m, nil

	case key.Matches(msg, m.keys.ZoomOut):
		if m.zoom > 0.25 {
			m.zoom /= 1.25
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleMove):
		m.deleteOriginal = !m.deleteOriginal
		if m.deleteOriginal {
			m.status = "apply will move originals"
		} else {
			m.status = "apply will copy originals"
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleRecycle):
		m.recycleQueue = !m.recycleQueue
		if m.recycleQueue {
			m.status = "skipped collections will requeue"
		} else {
			m.status = "skipped collections stay out"
		}
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		return m.startApply()
	}

	// remaining keys scroll the text preview
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m model) handleSkip() (tea.Model, tea.Cmd) {
	if !m.queue.Skip() {
		return m, nil
	}
	m.kills = 0
	m.status = "skipped"
	return m.afterDecision()
}

func (m model) handleDelete() (tea.Model, tea.Cmd) {
	if m.queue.Len() == 0 {
		return m, nil
	}
	if m.kills < m.threshold {
		m.mode = modeConfirmDelete
		return m, nil
	}
	return m.commitDelete()
}

func (m model) commitDelete() (tea.Model, tea.Cmd) {
	if !m.queue.Delete() {
		return m, nil
	}
	m.kills++
	m.status = "staged for deletion"
	return m.afterDecision()
}

func (m model) handleSelect() (tea.Model, tea.Cmd) {
	if m.queue.Len() == 0 {
		return m, nil
	}
	if len(m.folders) == 0 {
		m.status = "no folders yet, press n to create one"
		return m, nil
	}

	name := strings.TrimSpace(m.name.Value())
	if err := fsops.ValidateEntryName(name); err != nil {
		m.status = err.Error()
		return m, nil
	}

	target := filepath.Join(m.destination, m.folders[m.folderIdx], name)
	if m.queue.IsCollision(target) {
		return m.askOverwrite(target)
	}
	return m.commitSelect(target, false)
}

func (m model) askOverwrite(target string) (tea.Model, tea.Cmd) {
	m.target = target
	m.preview = m.overwritePreview(target)
	m.compare = ""
	m.mode = modeConfirmOverwrite
	front := m.queue.Peek()
	if front != nil && !front.IsDir && m.preview != nil && !m.preview.IsDir {
		return m, compareCmd(m.hasher, target, front.Path, m.preview.Path)
	}
	return m, nil
}

func (m model) commitSelect(target string, overwrite bool) (tea.Model, tea.Cmd) {
	ok, err := m.queue.Select(target, overwrite)
	if err != nil {
		var collision *queue.PathCollisionError
		if errors.As(err, &collision) {
			return m.askOverwrite(target)
		}
		m.status = err.Error()
		return m, nil
	}
	if !ok {
		return m, nil
	}
	m.kills = 0
	m.status = fmt.Sprintf("sorted into %s", filepath.Base(filepath.Dir(target)))
	return m.afterDecision()
}

// overwritePreview resolves what a confirmed overwrite would replace: the
// pending claim when one exists, the on-disk entry otherwise. Nil means the
// target cannot be previewed; the confirmation still goes ahead.
func (m *model) overwritePreview(target string) *collection.Collection {
	if claimed, ok := m.queue.ResolvePreviewSource(target); ok {
		return claimed
	}
	if err := m.spare.Reload(target, true); err != nil {
		logging.Warn("cannot preview collision target",
			logging.String("path", target), logging.Err(err))
		return nil
	}
	return m.spare
}

func (m model) handleUndo() (tea.Model, tea.Cmd) {
	if !m.queue.Undo() {
		m.status = "nothing to undo"
		return m, nil
	}
	m.kills = 0
	m.status = "undone"
	m.syncFront()
	return m, nil
}

func (m model) handleRedo() (tea.Model, tea.Cmd) {
	if !m.queue.Redo() {
		m.status = "nothing to redo"
		return m, nil
	}
	m.status = "redone"
	return m.afterDecision()
}

func (m model) handleFlip(forward bool) (tea.Model, tea.Cmd) {
	front := m.queue.Peek()
	if front == nil || len(front.Members) == 0 {
		return m, nil
	}
	if forward {
		front.Next()
	} else {
		front.Prev()
	}
	m.syncMember()
	return m, nil
}

// afterDecision advances the session after the queue shrank: serve the next
// collection, recycle the skipped ones, or fall into the drained prompt.
func (m model) afterDecision() (tea.Model, tea.Cmd) {
	if m.queue.Len() > 0 {
		m.syncFront()
		return m, nil
	}
	if m.recycleQueue && m.queue.SkippedLen() > 0 {
		m.queue.Requeue(m.criterion, m.descending)
		m.status = "queue recycled"
		m.syncFront()
		return m, nil
	}
	m.mode = modeDrained
	return m, nil
}

func (m model) startApply() (tea.Model, tea.Cmd) {
	staged := m.queue.StagedLen()
	if staged == 0 {
		m.status = "nothing staged to apply"
		return m, nil
	}
	m.stagedCount = staged
	m.mode = modeApplying
	return m, tea.Batch(m.spin.Tick, applyCmd(m.queue, m.deleteOriginal))
}

func (m model) handleEditName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.name.Blur()
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEsc:
		m.name.Blur()
		m.mode = modeBrowse
		if front := m.queue.Peek(); front != nil {
			m.name.SetValue(front.Name)
			m.name.CursorEnd()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m model) handleNewFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.folderEntry.Value())
		if err := fsops.ValidateEntryName(name); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if err := m.fs.Mkdir(filepath.Join(m.destination, name), 0755); err != nil {
			m.status = fmt.Sprintf("cannot create folder: %v", err)
			return m, nil
		}
		m.folderEntry.Blur()
		m.mode = modeBrowse
		m.refreshFolders()
		for i, folder := range m.folders {
			if folder == name {
				m.folderIdx = i
				break
			}
		}
		m.status = fmt.Sprintf("created %s", name)
		return m, nil
	case tea.KeyEsc:
		m.folderEntry.Blur()
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.folderEntry, cmd = m.folderEntry.Update(msg)
	return m, cmd
}

func (m model) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeBrowse
		return m.commitDelete()
	case "n", "N", "esc", "q":
		m.mode = modeBrowse
		m.status = "kept"
	}
	return m, nil
}

func (m model) handleConfirmOverwrite(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		target := m.target
		m.mode = modeBrowse
		m.target = ""
		m.preview = nil
		m.compare = ""
		return m.commitSelect(target, true)
	case "n", "N", "esc", "q":
		m.mode = modeBrowse
		m.target = ""
		m.preview = nil
		m.compare = ""
		m.status = "select cancelled"
	}
	return m, nil
}

func (m model) handleConfirmRedoAll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeBrowse
		redone := 0
		for m.queue.Redo() {
			redone++
		}
		m.status = fmt.Sprintf("redid %d decisions", redone)
		return m.afterDecision()
	case "n", "N", "esc", "q":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m model) handleConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "q":
		return m, tea.Quit
	case "a":
		m.quitAfterApply = true
		return m.startApply()
	case "n", "N", "esc":
		m.mode = modeBrowse
		if m.queue.Len() == 0 {
			m.mode = modeDrained
		}
	}
	return m, nil
}

func (m model) handleDrained(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a", "enter":
		if m.queue.StagedLen() == 0 && m.queue.SkippedLen() == 0 {
			return m, tea.Quit
		}
		return m.startApply()
	case "u":
		return m.undoFromDrained()
	case "r":
		if m.queue.SkippedLen() > 0 {
			m.queue.Requeue(m.criterion, m.descending)
			m.mode = modeBrowse
			m.status = "queue recycled"
			m.syncFront()
		}
		return m, nil
	case "q", "esc":
		if m.queue.StagedLen() > 0 {
			m.mode = modeConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) undoFromDrained() (tea.Model, tea.Cmd) {
	if !m.queue.Undo() {
		return m, nil
	}
	m.kills = 0
	m.mode = modeBrowse
	m.status = "undone"
	m.syncFront()
	return m, nil
}

func (m model) handleApplyError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.applyErr = nil
		return m.startApply()
	case "a", "q", "esc":
		m.err = m.applyErr
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.queue.Requeue(m.criterion, m.descending)
		m.mode = modeBrowse
		m.status = "queue recycled"
		m.syncFront()
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func addStats(a, b queue.ApplyStats) queue.ApplyStats {
	a.Deleted += b.Deleted
	a.Moved += b.Moved
	a.Copied += b.Copied
	a.Cleaned += b.Cleaned
	return a
}
