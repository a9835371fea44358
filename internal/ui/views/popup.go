package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centers popupContent on a screen of width x height.
// scroll skips lines from the top when the content is taller than the screen.
func (pr *PopupRenderer) RenderPopup(popupContent string, scroll, height, width int, popupStyle lipgloss.Style) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	// frame = border + padding, top and bottom
	frame := popupStyle.GetVerticalFrameSize()
	room := height - 2 - frame
	if room < 1 {
		room = 1
	}

	lines := strings.Split(popupContent, "\n")
	maxScroll := len(lines) - room
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + room
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[scroll:end]

	if scroll > 0 {
		visible[0] = pr.styles.Scroll.Render("↑ more above")
	}
	if end < len(lines) {
		visible[len(visible)-1] = pr.styles.Scroll.Render("↓ more below")
	}

	styledPopup := popupStyle.MaxWidth(width - 2).Render(strings.Join(visible, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styledPopup)
}

// MaxPopupScroll returns the largest useful scroll offset for content
func MaxPopupScroll(content string, height int, popupStyle lipgloss.Style) int {
	room := height - 2 - popupStyle.GetVerticalFrameSize()
	if room < 1 {
		room = 1
	}
	n := strings.Count(content, "\n") + 1 - room
	if n < 0 {
		return 0
	}
	return n
}
