package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	inputtypes "collectionview/internal/ui/input/types"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys inputtypes.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys inputtypes.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

var helpSections = []string{"Navigation", "Selection", "Search, Filter & Sort", "Reorder & General"}

// renderHelpContent renders the help information, one section per key group
func (r *HelpRenderer) renderHelpContent(width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Collection View Help"))
	help.WriteString("\n")

	groups := r.keys.FullHelp()
	keyWidth := 0
	for _, group := range groups {
		for _, b := range group {
			keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
		}
	}

	for i, group := range groups {
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, b := range group {
			help.WriteString(r.line(b, keyWidth, keyStyle, descStyle))
		}
	}

	help.WriteString("\n")
	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	for _, b := range []key.Binding{
		key.NewBinding(key.WithHelp("click", "Open item")),
		key.NewBinding(key.WithHelp("drag", "Move item (unsorted, unfiltered view only)")),
		key.NewBinding(key.WithHelp("wheel", "Scroll")),
	} {
		help.WriteString(r.line(b, keyWidth, keyStyle, descStyle))
	}

	help.WriteString("\n")
	help.WriteString(descStyle.Render("Press ? or Esc to close"))

	out := help.String()
	if width > 0 {
		out = lipgloss.NewStyle().MaxWidth(width - 10).Render(out)
	}
	return out
}

func (r *HelpRenderer) line(b key.Binding, keyWidth int, keyStyle, descStyle lipgloss.Style) string {
	h := b.Help()
	pad := strings.Repeat(" ", max(0, keyWidth-lipgloss.Width(h.Key)))
	return fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc))
}
