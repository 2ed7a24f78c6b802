package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imgsift/imgsift/internal/collection"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Padding(0, 1)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("203")).Bold(true).Padding(0, 1)
	dangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

func (m model) View() string {
	if m.width == 0 {
		return "starting…"
	}

	switch m.mode {
	case modeLoading:
		return fmt.Sprintf("\n  %s scanning sources…\n", m.spin.View())
	case modeApplying:
		return fmt.Sprintf("\n  %s applying %d staged decisions…\n", m.spin.View(), m.stagedCount)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.folderPane(), m.previewPane())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		panes,
		m.entryView(),
		m.statusLine(),
		m.footerView(),
	)
}

func (m model) headerView() string {
	mode := "copy"
	if m.deleteOriginal {
		mode = "move"
	}
	chips := []string{chipStyle.Render(mode)}
	if m.recycleQueue {
		chips = append(chips, chipStyle.Render("recycle"))
	}
	if m.zoom != 1.0 {
		chips = append(chips, dimStyle.Render(fmt.Sprintf("zoom %.1fx", m.zoom)))
	}

	front := m.queue.Peek()
	if front == nil {
		return headerStyle.Render("Queue is empty!") + " " + strings.Join(chips, " ")
	}

	info := []string{
		headerStyle.Render(front.MemberName()),
		dimStyle.Render(front.HumanSize() + " total"),
		dimStyle.Render(front.PositionText()),
		chipStyle.Render(m.queue.StatusLabel()),
	}
	return strings.Join(append(info, chips...), " ")
}

func (m model) folderPane() string {
	width := m.leftWidth()
	interior := m.paneHeight()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Folders"))
	b.WriteString("\n")

	if len(m.folders) == 0 {
		b.WriteString(dimStyle.Render("none yet, press n"))
		return paneStyle.Width(width).Height(interior).Render(b.String())
	}

	visible := max(interior-1, 1)
	start := 0
	if len(m.folders) > visible && m.folderIdx >= visible/2 {
		start = min(m.folderIdx-visible/2, len(m.folders)-visible)
	}
	end := min(start+visible, len(m.folders))

	for i := start; i < end; i++ {
		line := fmt.Sprintf("%-*s", width, truncate(" "+m.folders[i], width))
		if i == m.folderIdx {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(normalStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return paneStyle.Width(width).Height(interior).Render(b.String())
}

func (m model) previewPane() string {
	width := m.rightWidth()
	interior := m.paneHeight()
	rows := max(interior-1, 1)

	title := "Preview"
	c := m.queue.Peek()
	if m.mode == modeConfirmOverwrite {
		title = "Existing content at the target"
		c = m.preview
	}

	var body string
	switch {
	case c == nil && m.mode == modeConfirmOverwrite:
		body = dimStyle.Render("cannot preview the existing entry")
	case c == nil:
		body = dimStyle.Render("nothing queued")
	case c.Kind() == collection.KindText && m.mode == modeConfirmOverwrite:
		body = textSnippet(c.Text(), width, rows)
	case c.Kind() == collection.KindText:
		body = m.text.View()
	case c.Kind() == collection.KindImage:
		hint := int(float64(max(width, 2*rows)) * m.zoom)
		body = renderImage(c.Preview(hint), width, rows, m.zoom)
	default:
		body = renderImage(collection.Placeholder(), width, rows, 1.0)
	}

	return paneStyle.Width(width).Height(interior).
		Render(titleStyle.Render(title) + "\n" + body)
}

func (m model) entryView() string {
	if m.queue.Peek() == nil {
		return ""
	}
	if m.mode == modeNewFolder {
		return m.folderEntry.View()
	}
	line := m.name.View()
	if len(m.folders) > 0 {
		line += dimStyle.Render(fmt.Sprintf("  → %s/%s",
			m.folders[m.folderIdx], strings.TrimSpace(m.name.Value())))
	}
	return line
}

func (m model) statusLine() string {
	switch m.mode {
	case modeConfirmDelete:
		name := ""
		if front := m.queue.Peek(); front != nil {
			name = front.Name
		}
		return promptStyle.Render(fmt.Sprintf("Delete %s? (y/n)", name))
	case modeConfirmOverwrite:
		prompt := fmt.Sprintf("Overwrite %s? (y/n)", m.target)
		if m.compare != "" {
			prompt += " · " + m.compare
		}
		return promptStyle.Render(prompt)
	case modeConfirmRedoAll:
		return promptStyle.Render("Redo every undone decision? (y/n)")
	case modeConfirmQuit:
		return promptStyle.Render(fmt.Sprintf(
			"Quit without applying %d staged decisions? y quits · a applies first · esc stays",
			m.queue.StagedLen()))
	case modeDrained:
		return m.drainedPrompt()
	case modeApplyError:
		return dangerStyle.Render(fmt.Sprintf("apply failed: %v · r retries · a abandons", m.applyErr))
	case modeDone:
		return promptStyle.Render(fmt.Sprintf(
			"Applied. r requeues %d skipped · q quits", m.queue.SkippedLen()))
	}
	return statusStyle.Render(m.status)
}

func (m model) drainedPrompt() string {
	staged := m.queue.StagedLen()
	skipped := m.queue.SkippedLen()
	if staged == 0 && skipped == 0 {
		return promptStyle.Render("Queue is empty! Nothing is staged · q quits")
	}

	parts := make([]string, 0, 4)
	if staged > 0 {
		parts = append(parts, fmt.Sprintf("a applies %d staged", staged))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("r requeues %d skipped", skipped))
	}
	parts = append(parts, "u undoes", "q quits")
	return promptStyle.Render("Queue is empty! " + strings.Join(parts, " · "))
}

func (m model) footerView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.bar.ViewAs(m.queue.Progress()),
		m.help.View(m.keys),
	)
}

// textSnippet clips text to the pane for the one-shot preview shown during
// an overwrite confirmation; the scrolling viewport stays bound to the
// front collection.
func textSnippet(text string, width, rows int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
