package domain

import (
	"fmt"
	"strings"
)

// Record is the minimal shape the collection controller needs from an item.
// Everything beyond the id and the disabled flag is reached through Field.
type Record interface {
	ID() string
	IsDisabled() bool
	Field(name string) (any, bool)
}

// MetaEntry is one labelled value shown alongside an item
type MetaEntry struct {
	Label string `toml:"label" yaml:"label" json:"label"`
	Value string `toml:"value" yaml:"value" json:"value"`
}

// Item is the concrete record loaded from item sources
type Item struct {
	Key         string         `toml:"id" yaml:"id"`
	Title       string         `toml:"title" yaml:"title"`
	Subtitle    string         `toml:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string       `toml:"tags,omitempty" yaml:"tags,omitempty"`
	Meta        []MetaEntry    `toml:"meta,omitempty" yaml:"meta,omitempty"`
	Disabled    bool           `toml:"disabled,omitempty" yaml:"disabled,omitempty"`
	Fields      map[string]any `toml:"fields,omitempty" yaml:"fields,omitempty"`
}

// ID returns the stable identifier of the item
func (i Item) ID() string { return i.Key }

// IsDisabled reports whether the item refuses selection and dragging
func (i Item) IsDisabled() bool { return i.Disabled }

// Field resolves a named field. Built-in fields win over the open field bag,
// which wins over meta entries (matched by label, case-insensitively).
func (i Item) Field(name string) (any, bool) {
	switch strings.ToLower(name) {
	case "id":
		return i.Key, true
	case "title":
		return i.Title, true
	case "subtitle":
		return i.Subtitle, true
	case "description":
		return i.Description, true
	case "tags":
		return i.Tags, true
	case "disabled":
		return i.Disabled, true
	}

	if v, ok := i.Fields[name]; ok {
		return v, true
	}

	for _, m := range i.Meta {
		if strings.EqualFold(m.Label, name) {
			return m.Value, true
		}
	}
	return nil, false
}

// FieldText renders a field value as searchable text
func FieldText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, " ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, FieldText(p))
		}
		return strings.Join(parts, " ")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// IDs returns the identifiers of records in order
func IDs[T Record](items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID()
	}
	return ids
}

// ViewMode is a rendering hint for the collection
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewGrid
	ViewTable
)

var viewModeNames = []string{"list", "grid", "table"}

func (m ViewMode) String() string {
	if m < 0 || int(m) >= len(viewModeNames) {
		return "unknown"
	}
	return viewModeNames[m]
}

// Valid reports whether m is one of the known view modes
func (m ViewMode) Valid() bool {
	return m >= ViewList && m <= ViewTable
}

// Next cycles list -> grid -> table -> list
func (m ViewMode) Next() ViewMode {
	return ViewMode((int(m) + 1) % len(viewModeNames))
}

// ParseViewMode parses a view mode name
func ParseViewMode(s string) (ViewMode, bool) {
	for i, name := range viewModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return ViewMode(i), true
		}
	}
	return ViewList, false
}

// SortDirection orders sorted output
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// ParseSortDirection accepts "asc" or "desc"; anything else is asc
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return SortDesc
	}
	return SortAsc
}
