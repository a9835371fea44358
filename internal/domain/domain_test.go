package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItemField(t *testing.T) {
	item := Item{
		Key:    "k",
		Title:  "Title",
		Tags:   []string{"a", "b"},
		Meta:   []MetaEntry{{Label: "Level", Value: "Intro"}},
		Fields: map[string]any{"minutes": 5, "title": "shadowed"},
	}

	tests := []struct {
		name string
		want any
		ok   bool
	}{
		{"id", "k", true},
		{"TITLE", "Title", true},
		{"tags", []string{"a", "b"}, true},
		{"disabled", false, true},
		{"minutes", 5, true},
		{"level", "Intro", true},
		{"missing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := item.Field(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldText(t *testing.T) {
	assert.Equal(t, "", FieldText(nil))
	assert.Equal(t, "a b", FieldText([]string{"a", "b"}))
	assert.Equal(t, "1 x true", FieldText([]any{1, "x", true}))
	assert.Equal(t, "grid", FieldText(ViewGrid))
	assert.Equal(t, "2.5", FieldText(2.5))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"numbers", 2, 10, -1},
		{"mixed numeric", int64(3), 3.0, 0},
		{"numeric strings", "10", "9", 1},
		{"dates", "2024-03-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{"bools", false, true, -1},
		{"text is case-sensitive", "B", "a", -1},
		{"text", "apple", "banana", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestModeOf(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		values []any
		want   CompareMode
	}{
		{"empty", nil, CompareText},
		{"numbers", []any{1, int64(2), 3.5}, CompareNumber},
		{"numeric strings stay text", []any{"9", "10"}, CompareText},
		{"number and string", []any{10, "9"}, CompareText},
		{"dates", []any{day, &day}, CompareDate},
		{"bools", []any{true, false}, CompareBool},
		{"bool and number", []any{true, 1}, CompareText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeOf(tt.values))
		})
	}
}

func TestCompareAs(t *testing.T) {
	assert.Equal(t, -1, CompareAs(CompareNumber, 9, 10))
	assert.Equal(t, 1, CompareAs(CompareText, "9", "10"))
	assert.Equal(t, -1, CompareAs(CompareText, 10, "9"))
	assert.Equal(t, -1, CompareAs(CompareBool, false, true))
	assert.Equal(t, 1, CompareAs(CompareDate,
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty([]string{}))
	assert.True(t, IsEmpty([]any{}))
	assert.False(t, IsEmpty(""))
	assert.False(t, IsEmpty(0))
}

func TestViewMode(t *testing.T) {
	assert.Equal(t, ViewGrid, ViewList.Next())
	assert.Equal(t, ViewTable, ViewGrid.Next())
	assert.Equal(t, ViewList, ViewTable.Next())

	m, ok := ParseViewMode(" Table ")
	assert.True(t, ok)
	assert.Equal(t, ViewTable, m)

	_, ok = ParseViewMode("carousel")
	assert.False(t, ok)

	assert.False(t, ViewMode(7).Valid())
	assert.Equal(t, "unknown", ViewMode(7).String())
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortDirection("DESC"))
	assert.Equal(t, SortAsc, ParseSortDirection("sideways"))
	assert.Equal(t, SortAsc, SortDesc.Flip())
	assert.Equal(t, "desc", SortDesc.String())
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, IDs([]Item{{Key: "a"}, {Key: "b"}}))
	assert.Empty(t, IDs[Item](nil))
}
