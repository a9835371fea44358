package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Sort        lipgloss.Style
	InfoBox     lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Disabled    lipgloss.Style
	Tag         lipgloss.Style
	Dragged     lipgloss.Style
	DropTarget  lipgloss.Style
	TableHeader lipgloss.Style
	Card        lipgloss.Style
	CardCursor  lipgloss.Style
	Error       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Sort:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Tag:         lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // blue
		Dragged:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		DropTarget:  lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("214")),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardCursor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
