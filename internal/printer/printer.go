package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/query"
)

// DefaultColumns are printed when no columns are configured
var DefaultColumns = []string{"title", "subtitle", "tags"}

// maxColWidth keeps long descriptions from pushing the table off screen
const maxColWidth = 48

// Printer writes a derived view as a plain table
type Printer struct {
	Out     io.Writer
	Columns []string
	ShowID  bool
}

// New returns a printer writing to color.Output, which handles Windows consoles
func New(columns []string, showID bool) *Printer {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	return &Printer{Out: color.Output, Columns: columns, ShowID: showID}
}

// Summary prints the "N of M items" heading
func (p *Printer) Summary(visible, total int, q query.State) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprintf(p.Out, "%d of %d items", visible, total)

	var parts []string
	if q.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search %q", q.SearchTerm))
	}
	ids := make([]string, 0, len(q.ActiveFilters))
	for id := range q.ActiveFilters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s=%s", id, domain.FieldText(q.ActiveFilters[id])))
	}
	if q.SortKey != "" {
		parts = append(parts, fmt.Sprintf("sorted by %s %s", q.SortKey, q.SortDirection))
	}
	if len(parts) > 0 {
		_, _ = c.Fprintf(p.Out, " - %s", strings.Join(parts, ", "))
	}
	_, _ = fmt.Fprintln(p.Out)
}

// Collection prints one row per item in the order given
func (p *Printer) Collection(items []domain.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(p.Out, " none")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxColWidth

	header := make([]any, 0, len(p.Columns)+1)
	if p.ShowID {
		header = append(header, "ID")
	}
	for _, col := range p.Columns {
		header = append(header, strings.ToUpper(col))
	}
	tbl.AddRow(header...)

	for _, item := range items {
		tbl.AddRow(p.row(item)...)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

func (p *Printer) row(item domain.Item) []any {
	cells := make([]any, 0, len(p.Columns)+1)
	if p.ShowID {
		cells = append(cells, item.Key)
	}
	for _, col := range p.Columns {
		cells = append(cells, cell(item, col))
	}
	return cells
}

func cell(item domain.Item, col string) string {
	if strings.EqualFold(col, "tags") {
		tags := make([]string, len(item.Tags))
		for i, t := range item.Tags {
			tags[i] = "#" + t
		}
		return strings.Join(tags, " ")
	}
	v, ok := item.Field(col)
	if !ok {
		return "-"
	}
	text := domain.FieldText(v)
	if strings.EqualFold(col, "title") && item.Disabled {
		text += " (disabled)"
	}
	return text
}
