package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	PrevMember    key.Binding
	NextMember    key.Binding
	Skip          key.Binding
	Delete        key.Binding
	Select        key.Binding
	EditName      key.Binding
	NewFolder     key.Binding
	Undo          key.Binding
	Redo          key.Binding
	RedoAll       key.Binding
	ZoomIn        key.Binding
	ZoomOut       key.Binding
	ToggleMove    key.Binding
	ToggleRecycle key.Binding
	Apply         key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "folder up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "folder down"),
		),
		PrevMember: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous file"),
		),
		NextMember: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next file"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "skip"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sort into folder"),
		),
		EditName: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit name"),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new folder"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "redo"),
		),
		RedoAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "redo all"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ToggleMove: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "move/copy originals"),
		),
		ToggleRecycle: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "recycle skipped"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Skip, k.Delete, k.Select, k.Undo, k.Redo, k.Apply, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevMember, k.NextMember},
		{k.Skip, k.Delete, k.Select, k.EditName},
		{k.NewFolder, k.Undo, k.Redo, k.RedoAll},
		{k.ZoomIn, k.ZoomOut, k.ToggleMove, k.ToggleRecycle},
		{k.Apply, k.Help, k.Quit},
	}
}
