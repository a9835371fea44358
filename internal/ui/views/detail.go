package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"collectionview/internal/domain"
)

// DetailRenderer turns an activated item into a markdown document and renders
// it through glamour. Renderers are cached per wrap width.
type DetailRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewDetailRenderer creates a detail renderer using a glamour standard style
// ("dark", "light", "notty", ...) or "auto"
func NewDetailRenderer(style string) *DetailRenderer {
	if style == "" {
		style = "dark"
	}
	return &DetailRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Markdown builds the source document for an item
func Markdown(item domain.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Title)
	if item.Subtitle != "" {
		fmt.Fprintf(&b, "_%s_\n\n", item.Subtitle)
	}
	if item.Disabled {
		b.WriteString("> disabled\n\n")
	}
	if item.Description != "" {
		b.WriteString(strings.TrimSpace(item.Description))
		b.WriteString("\n\n")
	}
	if len(item.Meta) > 0 {
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, m := range item.Meta {
			fmt.Fprintf(&b, "| %s | %s |\n", m.Label, m.Value)
		}
		b.WriteString("\n")
	}
	if len(item.Tags) > 0 {
		tags := make([]string, len(item.Tags))
		for i, t := range item.Tags {
			tags[i] = "`" + t + "`"
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// Render renders the item wrapped at width
func (d *DetailRenderer) Render(item domain.Item, width int) (string, error) {
	if width < 20 {
		width = 20
	}

	r, ok := d.renderers[width]
	if !ok {
		styleOpt := glamour.WithStandardStyle(d.style)
		if d.style == "auto" {
			styleOpt = glamour.WithAutoStyle()
		}
		var err error
		r, err = glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		d.renderers[width] = r
	}

	out, err := r.Render(Markdown(item))
	if err != nil {
		return "", fmt.Errorf("failed to render %q: %w", item.Key, err)
	}
	return strings.Trim(out, "\n"), nil
}
