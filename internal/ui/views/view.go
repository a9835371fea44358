package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/navigation"
	"collectionview/internal/ui/services/reorder"
)

// headerLines are the lines above the first row: padding, title, status,
// input and the top scroll indicator
const headerLines = 5

// FilterBadge is an active filter shown in the title line
type FilterBadge struct {
	Label string
	Value any
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Items          []domain.Item // the visible list, in display order
	TotalCount     int
	Cursor         int
	ViewportOffset int
	ViewportRows   int
	Mode           domain.ViewMode
	TableColumns   []string

	Selectable    bool
	Selected      map[string]bool
	SelectedCount int
	AllSelected   bool
	SomeSelected  bool

	SearchTerm    string
	Searching     bool
	SearchInput   string
	Filters       []FilterBadge
	SortKey       string
	SortDirection domain.SortDirection

	Drag       reorder.State
	CanReorder bool

	Loading       bool
	StatusMessage string
	HelpLine      string

	ShowHelp           bool
	HelpContent        string
	HelpScrollOffset   int
	ShowDetail         bool
	DetailContent      string
	DetailScrollOffset int
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	itemRender  *ItemRenderer
	gridRender  *GridRenderer
	tableRender *TableRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	items := NewItemRenderer(styles)
	return &Renderer{
		styles:      styles,
		itemRender:  items,
		gridRender:  NewGridRenderer(styles, items),
		tableRender: NewTableRenderer(styles, items),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// ViewportRows is how many rows of the given mode fit on a terminal of height lines
func ViewportRows(height int, mode domain.ViewMode) int {
	lines := height - navigation.ReservedRows
	switch mode {
	case domain.ViewTable:
		lines-- // column header
	case domain.ViewGrid:
		lines /= CardHeight
	}
	if lines < 1 {
		return 1
	}
	return lines
}

// GridColumns is how many grid cards fit on a terminal of width columns
func GridColumns(width int) int {
	return Columns(contentWidth(width))
}

// HitTest maps a terminal cell to an index into state.Items
func HitTest(state ViewState, x, y int) (int, bool) {
	top := headerLines
	if state.Mode == domain.ViewTable {
		top++
	}
	rowY := y - top
	if rowY < 0 || x < 2 {
		return -1, false
	}

	var index int
	switch state.Mode {
	case domain.ViewGrid:
		row := rowY / CardHeight
		col := (x - 2) / CardWidth
		cols := GridColumns(state.Width)
		if row >= state.ViewportRows || col >= cols {
			return -1, false
		}
		index = state.ViewportOffset + row*cols + col
	default:
		if rowY >= state.ViewportRows {
			return -1, false
		}
		index = state.ViewportOffset + rowY
	}

	if index >= len(state.Items) {
		return -1, false
	}
	return index, true
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowDetail && state.DetailContent != "" {
		return r.popupRender.RenderPopup(state.DetailContent, state.DetailScrollOffset, state.Height, state.Width, r.styles.InfoBox)
	}
	if state.ShowHelp {
		return r.popupRender.RenderPopup(state.HelpContent, state.HelpScrollOffset, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderStatusLine(state))
	content.WriteString("\n")
	if state.Searching {
		content.WriteString(state.SearchInput)
	}
	content.WriteString("\n")

	switch {
	case state.Loading && state.TotalCount == 0:
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("Loading items..."))
	case state.TotalCount == 0:
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("No items."))
	case len(state.Items) == 0:
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("No items match the current search and filters."))
	default:
		content.WriteString(r.renderItems(state))
	}

	helpText := state.HelpLine
	if helpText == "" {
		helpText = "Press ? for help"
	}
	helpText = r.styles.Help.Render(helpText)

	// push help to the bottom; 2 lines go to the container padding
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("collectionview")

	var badges []string
	if state.SearchTerm != "" {
		badges = append(badges, r.styles.Filter.Render(fmt.Sprintf("[Search: %s]", state.SearchTerm)))
	}
	for _, f := range state.Filters {
		badges = append(badges, r.styles.Filter.Render(fmt.Sprintf("[%s: %s]", f.Label, domain.FieldText(f.Value))))
	}
	if state.SortKey != "" {
		arrow := "▲"
		if state.SortDirection == domain.SortDesc {
			arrow = "▼"
		}
		badges = append(badges, r.styles.Sort.Render(fmt.Sprintf("[Sort: %s %s]", state.SortKey, arrow)))
	}
	if len(badges) == 0 {
		return logo
	}

	right := strings.Join(badges, " ")
	paddingWidth := contentWidth(state.Width) - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + right
	}
	return logo + "  " + right
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	parts := []string{fmt.Sprintf("%d of %d items", len(state.Items), state.TotalCount)}

	if state.Selectable && state.SelectedCount > 0 {
		sel := fmt.Sprintf("%d selected", state.SelectedCount)
		if state.AllSelected {
			sel += " (all)"
		}
		parts = append(parts, sel)
	}
	parts = append(parts, state.Mode.String())

	if state.Drag.Dragging() {
		drag := "moving " + r.titleOf(state, state.Drag.DraggedID)
		if state.Drag.DropTargetID != "" {
			drag += " → " + r.titleOf(state, state.Drag.DropTargetID)
		}
		parts = append(parts, r.styles.Dragged.Render(drag))
	}

	line := r.styles.Status.Render(strings.Join(parts, " · "))
	if state.StatusMessage != "" {
		line += "  " + r.styles.Dim.Render(state.StatusMessage)
	}
	return line
}

func (r *Renderer) titleOf(state ViewState, id string) string {
	for _, item := range state.Items {
		if item.Key == id {
			return item.Title
		}
	}
	return id
}

func (r *Renderer) itemState(state ViewState, index int) ItemState {
	id := state.Items[index].Key
	return ItemState{
		Cursor:     index == state.Cursor,
		Selected:   state.Selected[id],
		Dragged:    state.Drag.DraggedID == id,
		DropTarget: state.Drag.DropTargetID == id,
		Selectable: state.Selectable,
	}
}

// renderItems renders the top indicator, the rows on screen and the bottom
// indicator
func (r *Renderer) renderItems(state ViewState) string {
	width := contentWidth(state.Width)
	rows := state.ViewportRows
	if rows < 1 {
		rows = 1
	}
	offset := state.ViewportOffset
	if offset < 0 || offset >= len(state.Items) {
		offset = 0
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	} else {
		lines = append(lines, "")
	}

	var shown int
	switch state.Mode {
	case domain.ViewGrid:
		cols := Columns(width)
		end := min(offset+rows*cols, len(state.Items))
		cards := make([]string, 0, end-offset)
		for i := offset; i < end; i++ {
			cards = append(cards, r.gridRender.RenderCard(state.Items[i], r.itemState(state, i), state.SearchTerm))
		}
		lines = append(lines, r.gridRender.RenderRows(cards, cols)...)
		shown = end - offset

	case domain.ViewTable:
		end := min(offset+rows, len(state.Items))
		columns := state.TableColumns
		if len(columns) == 0 {
			columns = []string{"title", "subtitle"}
		}
		widths := r.tableRender.Widths(columns, state.Items[offset:end])
		lines = append(lines, r.tableRender.RenderHeader(columns, widths, state.SortKey, state.SortDirection, RowPrefix(state.Selectable)))
		for i := offset; i < end; i++ {
			lines = append(lines, r.tableRender.RenderRow(state.Items[i], r.itemState(state, i), columns, widths, state.SearchTerm, width))
		}
		shown = end - offset

	default:
		end := min(offset+rows, len(state.Items))
		for i := offset; i < end; i++ {
			lines = append(lines, r.itemRender.RenderLine(state.Items[i], r.itemState(state, i), state.SearchTerm, width))
		}
		shown = end - offset
	}

	if below := len(state.Items) - offset - shown; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

// contentWidth is the terminal width minus the container padding
func contentWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	if width <= 4 {
		return 1
	}
	return width - 4
}
