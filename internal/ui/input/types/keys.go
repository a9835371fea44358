package types

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding of the collection view. It satisfies
// help.KeyMap so the footer and the help popup read from the same source.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Select    key.Binding
	SelectAll key.Binding
	Search    key.Binding
	Filter    key.Binding
	Sort      key.Binding
	SortDir   key.Binding
	ViewMode  key.Binding
	Grab      key.Binding
	Activate  key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("gg/home", "top")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
		Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll: key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "select all")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		SortDir:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort direction")),
		ViewMode:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view mode")),
		Grab:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the footer line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Search, k.Filter, k.Sort, k.ViewMode, k.Grab, k.Help, k.Quit}
}

// FullHelp is the help popup, one column per group
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Select, k.SelectAll, k.Activate, k.Cancel},
		{k.Search, k.Filter, k.Sort, k.SortDir, k.ViewMode},
		{k.Grab, k.Help, k.Quit},
	}
}

// MoveKeyMap is the footer shown while an item is being moved
type MoveKeyMap struct {
	KeyMap
}

func (k MoveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "pick target")),
		key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter/m", "drop")),
		k.Cancel,
	}
}

func (k MoveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
