package views

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/reorder"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func sampleItems() []domain.Item {
	return []domain.Item{
		{Key: "1", Title: "Go basics", Subtitle: "Lesson 1", Tags: []string{"go"}},
		{Key: "2", Title: "Rust basics", Disabled: true},
		{Key: "3", Title: "SQL joins", Fields: map[string]any{"minutes": 10}},
	}
}

func baseState() ViewState {
	items := sampleItems()
	return ViewState{
		Width:        80,
		Height:       20,
		Items:        items,
		TotalCount:   len(items),
		ViewportRows: ViewportRows(20, domain.ViewList),
		Selectable:   true,
		Selected:     map[string]bool{},
	}
}

func TestRenderLine(t *testing.T) {
	r := NewItemRenderer(NewStyles())
	items := sampleItems()

	line := r.RenderLine(items[0], ItemState{Cursor: true, Selected: true, Selectable: true}, "", 60)
	assert.True(t, strings.HasPrefix(line, "> [x] Go basics"))
	assert.Contains(t, line, "Lesson 1")
	assert.Contains(t, line, "#go")
	assert.Equal(t, 60, ansi.StringWidth(line), "cursor rows fill the width")

	line = r.RenderLine(items[1], ItemState{Selectable: true}, "", 60)
	assert.True(t, strings.HasPrefix(line, "  [-] Rust basics"))

	line = r.RenderLine(items[0], ItemState{Dragged: true}, "", 60)
	assert.True(t, strings.HasPrefix(line, "  ≡ Go basics"), "no checkbox when selection is off")

	line = r.RenderLine(items[0], ItemState{}, "", 8)
	assert.LessOrEqual(t, ansi.StringWidth(line), 8)
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestTitleHighlight(t *testing.T) {
	r := NewItemRenderer(NewStyles())
	assert.Equal(t, "Go basics", r.Title(sampleItems()[0], ItemState{}, "BAS"))
}

func TestViewportRows(t *testing.T) {
	assert.Equal(t, 12, ViewportRows(20, domain.ViewList))
	assert.Equal(t, 11, ViewportRows(20, domain.ViewTable))
	assert.Equal(t, 3, ViewportRows(20, domain.ViewGrid))
	assert.Equal(t, 1, ViewportRows(3, domain.ViewList))
}

func TestHitTest(t *testing.T) {
	st := baseState()

	idx, ok := HitTest(st, 4, headerLines)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = HitTest(st, 4, headerLines+2)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = HitTest(st, 4, headerLines+3)
	assert.False(t, ok, "below the last item")
	_, ok = HitTest(st, 4, 1)
	assert.False(t, ok, "title line")

	st.Mode = domain.ViewTable
	idx, ok = HitTest(st, 4, headerLines+1)
	require.True(t, ok)
	assert.Equal(t, 0, idx, "table rows start under the header")

	st.Mode = domain.ViewGrid
	st.ViewportRows = ViewportRows(20, domain.ViewGrid)
	idx, ok = HitTest(st, 2+CardWidth+1, headerLines+1)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "second card in the first row")
	_, ok = HitTest(st, 2+3*CardWidth, headerLines)
	assert.False(t, ok, "past the last column")
}

func TestRenderListLayout(t *testing.T) {
	r := NewRenderer()
	st := baseState()
	st.Selected["1"] = true
	st.SelectedCount = 1
	st.SearchTerm = "basics"
	st.Filters = []FilterBadge{{Label: "Level", Value: "intro"}}
	st.SortKey = "title"
	st.SortDirection = domain.SortDesc

	out := r.Render(st)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, st.Height)
	assert.Contains(t, lines[1], "collectionview")
	assert.Contains(t, lines[1], "[Search: basics]")
	assert.Contains(t, lines[1], "[Level: intro]")
	assert.Contains(t, lines[1], "[Sort: title ▼]")
	assert.Contains(t, lines[2], "3 of 3 items · 1 selected · list")
	assert.Contains(t, lines[headerLines], "Go basics")
	assert.Contains(t, lines[headerLines+2], "SQL joins")
	assert.Contains(t, lines[st.Height-2], "Press ? for help")
}

func TestRenderScrollIndicators(t *testing.T) {
	r := NewRenderer()
	st := baseState()
	st.ViewportRows = 1
	st.ViewportOffset = 1
	st.Cursor = 1

	out := r.Render(st)
	assert.Contains(t, out, "↑ 1 more above ↑")
	assert.Contains(t, out, "↓ 1 more below ↓")
	assert.Contains(t, out, "Rust basics")
	assert.NotContains(t, out, "Go basics")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer()
	st := baseState()
	st.Items = nil
	assert.Contains(t, r.Render(st), "No items match")

	st.TotalCount = 0
	assert.Contains(t, r.Render(st), "No items.")
}

func TestRenderDragStatus(t *testing.T) {
	r := NewRenderer()
	st := baseState()
	st.Drag = reorder.State{DraggedID: "1", DropTargetID: "3"}

	out := r.Render(st)
	assert.Contains(t, out, "moving Go basics → SQL joins")
	assert.Contains(t, out, "≡ Go basics")
	assert.Contains(t, out, "→ SQL joins")
}

func TestRenderTable(t *testing.T) {
	r := NewRenderer()
	st := baseState()
	st.Mode = domain.ViewTable
	st.TableColumns = []string{"title", "minutes"}
	st.SortKey = "minutes"

	lines := strings.Split(r.Render(st), "\n")
	header := lines[headerLines]
	assert.Contains(t, header, "title")
	assert.Contains(t, header, "minutes ▲")
	assert.Contains(t, lines[headerLines+3], "SQL joins")
	assert.Contains(t, lines[headerLines+3], "10")
}

func TestRenderGrid(t *testing.T) {
	r := NewRenderer()
	st := baseState()
	st.Mode = domain.ViewGrid
	st.ViewportRows = ViewportRows(st.Height, st.Mode)

	lines := strings.Split(r.Render(st), "\n")
	first := lines[headerLines+1]
	assert.Contains(t, first, "Go basics")
	assert.Contains(t, first, "Rust basics", "two cards share a row at width 80")
	assert.Equal(t, 2, GridColumns(80))
}

func TestRenderPopup(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	content := strings.Repeat("line\n", 40) + "last"

	out := pr.RenderPopup(content, 0, 20, 60, NewStyles().InfoBox)
	assert.Len(t, strings.Split(out, "\n"), 20)
	assert.Contains(t, out, "↓ more below")
	assert.NotContains(t, out, "last")

	out = pr.RenderPopup(content, 1000, 20, 60, NewStyles().InfoBox)
	assert.Contains(t, out, "last", "scroll is clamped to the end")
	assert.Contains(t, out, "↑ more above")

	assert.Equal(t, 41-(20-2-4), MaxPopupScroll(content, 20, NewStyles().InfoBox))
}

func TestDetail(t *testing.T) {
	item := domain.Item{
		Key:         "1",
		Title:       "Go basics",
		Subtitle:    "Lesson 1",
		Description: "A **short** tour",
		Tags:        []string{"go"},
		Meta:        []domain.MetaEntry{{Label: "Level", Value: "Intro"}},
	}

	md := Markdown(item)
	assert.True(t, strings.HasPrefix(md, "# Go basics\n"))
	assert.Contains(t, md, "_Lesson 1_")
	assert.Contains(t, md, "| Level | Intro |")
	assert.Contains(t, md, "`go`")

	d := NewDetailRenderer("notty")
	out, err := d.Render(item, 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Go basics")
	assert.Contains(t, out, "short")
	assert.Contains(t, out, "Intro")
}
