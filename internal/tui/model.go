package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgsift/imgsift/internal/collection"
	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/hash"
	"github.com/imgsift/imgsift/internal/queue"
)

// mode is the input state of the session; every key is interpreted against
// exactly one of these.
type mode int

const (
	modeLoading mode = iota // walking the source roots
	modeBrowse              // triaging the front collection
	modeEditName            // the name entry has focus
	modeNewFolder           // the folder entry has focus
	modeConfirmDelete
	modeConfirmOverwrite
	modeConfirmRedoAll
	modeConfirmQuit
	modeDrained  // queue empty, staged work not yet applied
	modeApplying // an apply pass is in flight
	modeApplyError
	modeDone // applied, skipped collections left over
)

// The queue is single-owner and none of its methods are safe for
// concurrent use. While loadCmd or applyCmd runs in its goroutine the
// model neither reads nor mutates the queue: loading and applying modes
// render from fields captured beforehand and ignore every key.
type model struct {
	queue  *queue.Queue
	fs     fsops.FS
	hasher hash.Hasher

	destination string
	sources     []string
	walkOpts    queue.WalkOptions

	deleteOriginal bool
	recycleQueue   bool
	threshold      int
	criterion      queue.Criterion
	descending     bool

	mode        mode
	keys        keyMap
	help        help.Model
	spin        spinner.Model
	bar         progress.Model
	name        textinput.Model
	folderEntry textinput.Model
	text        viewport.Model

	folders   []string
	folderIdx int

	zoom  float64
	kills int // consecutive confirmed deletes, gates the prompt

	width  int
	height int

	// collision confirmation state
	target  string                 // destination awaiting the overwrite answer
	spare   *collection.Collection // reloaded to preview on-disk targets
	preview *collection.Collection // shown in the right pane while confirming
	compare string                 // content comparison verdict, once hashed

	status         string
	stagedCount    int // captured before an apply pass starts
	quitAfterApply bool

	stats    queue.ApplyStats
	applied  bool
	applyErr error
	err      error
}

func newModel(params Params) model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	name := textinput.New()
	name.Prompt = "sort as: "
	name.PromptStyle = dimStyle
	name.CharLimit = 255

	folderEntry := textinput.New()
	folderEntry.Prompt = "new folder: "
	folderEntry.PromptStyle = dimStyle
	folderEntry.CharLimit = 255

	return model{
		queue:          params.Queue,
		fs:             params.FS,
		hasher:         hash.NewSHA256Hasher(),
		destination:    params.Destination,
		sources:        params.Sources,
		walkOpts:       params.WalkOpts,
		deleteOriginal: params.DeleteOriginal,
		recycleQueue:   params.RecycleQueue,
		threshold:      params.Threshold,
		criterion:      params.Criterion,
		descending:     params.Descending,
		mode:           modeLoading,
		keys:           newKeyMap(),
		help:           help.New(),
		spin:           sp,
		bar:            progress.New(progress.WithDefaultGradient()),
		name:           name,
		folderEntry:    folderEntry,
		zoom:           1.0,
		spare:          &collection.Collection{},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick,
		loadCmd(m.queue, m.sources, m.walkOpts, m.criterion, m.descending))
}

// refreshFolders re-reads the destination's immediate subdirectories. The
// list is what the user files collections into, so it is re-read after
// every new-folder.
func (m *model) refreshFolders() {
	entries, err := os.ReadDir(m.destination)
	if err != nil {
		m.folders = nil
		m.folderIdx = 0
		m.status = fmt.Sprintf("cannot list %s: %v", m.destination, err)
		return
	}

	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	m.folders = folders
	if m.folderIdx >= len(folders) {
		m.folderIdx = max(len(folders)-1, 0)
	}
}

// syncFront refills the name entry and the preview state for a new front
// collection.
func (m *model) syncFront() {
	front := m.queue.Peek()
	if front == nil {
		return
	}
	m.name.SetValue(front.Name)
	m.name.CursorEnd()
	m.syncMember()
}

// syncMember refreshes preview state after the cursor moved inside the
// front collection, leaving any name edit alone.
func (m *model) syncMember() {
	front := m.queue.Peek()
	if front == nil {
		return
	}
	if front.Kind() == collection.KindText {
		m.text.SetContent(front.Text())
		m.text.GotoTop()
	}
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.bar.Width = max(width-4, 10)
	m.name.Width = max(width-20, 10)
	m.folderEntry.Width = max(width-20, 10)
	m.layout()
}

// layout sizes the text viewport to the preview pane interior. Called on
// resize and when the full help opens or closes, since that changes how
// much height the panes get.
func (m *model) layout() {
	m.text.Width = m.rightWidth()
	m.text.Height = max(m.paneHeight()-1, 1)
}

func (m model) leftWidth() int {
	w := m.width / 4
	if w < 14 {
		w = 14
	}
	if w > 28 {
		w = 28
	}
	return w
}

func (m model) rightWidth() int {
	return max(m.width-m.leftWidth()-4, 20)
}

// paneHeight is the interior height of both panes: the window minus the
// header, entry, status and progress lines, the help block, and the pane
// borders.
func (m model) paneHeight() int {
	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 4
	}
	return max(m.height-4-helpHeight-2, 4)
}
