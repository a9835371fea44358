package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"collectionview/internal/domain"
)

const maxColumnWidth = 32

// TableRenderer renders items as aligned columns with a sortable header
type TableRenderer struct {
	styles *Styles
	items  *ItemRenderer
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer(styles *Styles, items *ItemRenderer) *TableRenderer {
	return &TableRenderer{styles: styles, items: items}
}

// Widths sizes each column to its widest cell among header and rows
func (t *TableRenderer) Widths(columns []string, items []domain.Item) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = ansi.StringWidth(col) + 2 // room for the sort arrow
		for _, item := range items {
			if w := ansi.StringWidth(cellText(item, col)); w > widths[i] {
				widths[i] = w
			}
		}
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// RenderHeader renders the column titles, marking the sort column
func (t *TableRenderer) RenderHeader(columns []string, widths []int, sortKey string, dir domain.SortDirection, prefix int) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		title := col
		if strings.EqualFold(col, sortKey) {
			if dir == domain.SortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cells[i] = padRight(ansi.Truncate(title, widths[i], "…"), widths[i])
	}
	return strings.Repeat(" ", prefix) + t.styles.TableHeader.Render(strings.Join(cells, "  "))
}

// RenderRow renders one item as a table row
func (t *TableRenderer) RenderRow(item domain.Item, st ItemState, columns []string, widths []int, term string, width int) string {
	var b strings.Builder
	if st.Cursor {
		b.WriteString("> ")
	} else {
		b.WriteString("  ")
	}
	if box := t.items.Checkbox(item, st); box != "" {
		b.WriteString(box)
		b.WriteString(" ")
	}

	cells := make([]string, len(columns))
	for i, col := range columns {
		var cell string
		if strings.EqualFold(col, "title") {
			cell = t.items.Title(item, st, term)
		} else {
			cell = cellText(item, col)
			if item.Disabled {
				cell = t.styles.Dim.Render(cell)
			}
		}
		cells[i] = padRight(ansi.Truncate(cell, widths[i], "…"), widths[i])
	}
	b.WriteString(strings.Join(cells, "  "))

	switch {
	case st.Dragged:
		b.WriteString(t.styles.Dragged.Render("  ≡"))
	case st.DropTarget:
		b.WriteString(t.styles.DropTarget.Render("  ←"))
	}

	line := b.String()
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	if st.Cursor {
		line = t.styles.Cursor.Render(padRight(line, width))
	}
	return line
}

// RowPrefix is the width taken by the cursor marker and checkbox
func RowPrefix(selectable bool) int {
	if selectable {
		return 6
	}
	return 2
}

func cellText(item domain.Item, column string) string {
	v, ok := item.Field(column)
	if !ok {
		return ""
	}
	return domain.FieldText(v)
}
