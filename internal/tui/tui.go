// Package tui runs the interactive triage session. One collection at a
// time is served from the queue with its preview; every keypress stages a
// decision, and nothing touches the filesystem until the user applies the
// whole batch.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgsift/imgsift/internal/fsops"
	"github.com/imgsift/imgsift/internal/queue"
)

// Params configures a session. The queue comes in empty; the session walks
// Sources itself so the first frame can show a spinner instead of a frozen
// terminal.
type Params struct {
	Queue          *queue.Queue
	FS             fsops.FS
	Destination    string
	Sources        []string
	WalkOpts       queue.WalkOptions
	DeleteOriginal bool
	RecycleQueue   bool
	Threshold      int
	Criterion      queue.Criterion
	Descending     bool
}

// Summary reports what the session committed, for the command to print
// once the alternate screen is gone.
type Summary struct {
	Stats            queue.ApplyStats
	Applied          bool
	SkippedRemaining int
}

// Run blocks until the session ends. The returned error is either a fatal
// session failure or the apply error the user chose to abandon on; the
// Summary is valid in both cases since earlier apply passes may have
// committed work already.
func Run(params Params) (Summary, error) {
	p := tea.NewProgram(newModel(params), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to run session: %w", err)
	}

	m := final.(model)
	return Summary{
		Stats:            m.stats,
		Applied:          m.applied,
		SkippedRemaining: m.queue.SkippedLen(),
	}, m.err
}
