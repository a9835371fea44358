package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"collectionview/internal/domain"
)

const (
	// CardWidth is the outer width of a grid card, border included
	CardWidth = 30
	// CardHeight is the outer height of a grid card, border included
	CardHeight = 4
)

// GridRenderer lays items out as bordered cards
type GridRenderer struct {
	styles *Styles
	items  *ItemRenderer
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles, items *ItemRenderer) *GridRenderer {
	return &GridRenderer{styles: styles, items: items}
}

// Columns returns how many cards fit in width
func Columns(width int) int {
	cols := width / CardWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// RenderCard renders one card
func (g *GridRenderer) RenderCard(item domain.Item, st ItemState, term string) string {
	inner := CardWidth - 4

	head := g.items.Title(item, st, term)
	if box := g.items.Checkbox(item, st); box != "" {
		head = box + " " + head
	}
	switch {
	case st.Dragged:
		head = g.styles.Dragged.Render("≡ ") + head
	case st.DropTarget:
		head = g.styles.DropTarget.Render("→ ") + head
	}

	sub := g.styles.Dim.Render(item.Subtitle)
	if item.Subtitle == "" && len(item.Tags) > 0 {
		sub = g.items.Tags(item.Tags)
	}

	body := ansi.Truncate(head, inner, "…") + "\n" + ansi.Truncate(sub, inner, "…")

	style := g.styles.Card
	if st.Cursor {
		style = g.styles.CardCursor
	}
	return style.Width(inner + 2).Render(body)
}

// RenderRows joins cards into rows of cols cards
func (g *GridRenderer) RenderRows(cards []string, cols int) []string {
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return rows
}
