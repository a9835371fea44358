package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/search"
)

// ItemState is the per-item flags a renderer needs
type ItemState struct {
	Cursor     bool
	Selected   bool
	Dragged    bool
	DropTarget bool
	Selectable bool // hide checkboxes when selection is switched off
}

// ItemRenderer handles rendering of a single item in list and grid layouts
type ItemRenderer struct {
	styles *Styles
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles) *ItemRenderer {
	return &ItemRenderer{styles: styles}
}

// Checkbox returns the selection marker for an item
func (r *ItemRenderer) Checkbox(item domain.Item, st ItemState) string {
	switch {
	case !st.Selectable:
		return ""
	case item.Disabled:
		return r.styles.Dim.Render("[-]")
	case st.Selected:
		return r.styles.Selected.Render("[x]")
	default:
		return "[ ]"
	}
}

// RenderLine renders the list row for an item, truncated to width
func (r *ItemRenderer) RenderLine(item domain.Item, st ItemState, term string, width int) string {
	var b strings.Builder

	switch {
	case st.Cursor:
		b.WriteString("> ")
	default:
		b.WriteString("  ")
	}

	if box := r.Checkbox(item, st); box != "" {
		b.WriteString(box)
		b.WriteString(" ")
	}

	switch {
	case st.Dragged:
		b.WriteString(r.styles.Dragged.Render("≡ "))
	case st.DropTarget:
		b.WriteString(r.styles.DropTarget.Render("→ "))
	}

	b.WriteString(r.Title(item, st, term))

	if item.Subtitle != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Dim.Render(item.Subtitle))
	}
	if len(item.Tags) > 0 {
		b.WriteString("  ")
		b.WriteString(r.Tags(item.Tags))
	}

	line := b.String()
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	if st.Cursor {
		line = r.styles.Cursor.Render(padRight(line, width))
	}
	return line
}

// Title renders the item title with the search match highlighted
func (r *ItemRenderer) Title(item domain.Item, st ItemState, term string) string {
	base := lipgloss.NewStyle()
	switch {
	case item.Disabled:
		base = r.styles.Disabled
	case st.DropTarget:
		base = r.styles.DropTarget
	case st.Dragged:
		base = r.styles.Dragged
	case st.Selected:
		base = r.styles.Selected
	}

	before, match, after, ok := search.Highlight(item.Title, term)
	if !ok {
		return base.Render(item.Title)
	}
	return base.Render(before) + r.styles.Highlight.Render(match) + base.Render(after)
}

// Tags renders tags as #tag words
func (r *ItemRenderer) Tags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = r.styles.Tag.Render("#" + t)
	}
	return strings.Join(parts, " ")
}

func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
