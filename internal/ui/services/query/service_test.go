package query

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/filter"
)

func lessons() []domain.Item {
	return []domain.Item{
		{Key: "1", Title: "Go basics", Description: "syntax", Tags: []string{"go", "beginner"}, Fields: map[string]any{"minutes": 5}},
		{Key: "2", Title: "Go channels", Description: "concurrency", Tags: []string{"go"}, Fields: map[string]any{"minutes": 15}},
		{Key: "3", Title: "Rust basics", Description: "ownership", Tags: []string{"rust", "beginner"}, Fields: map[string]any{"minutes": 5}},
		{Key: "4", Title: "SQL joins", Description: "Go deeper into queries", Tags: []string{"sql"}, Fields: map[string]any{"minutes": 10}},
		{Key: "5", Title: "Go testing", Description: "testify", Tags: []string{"go", "beginner"}, Fields: map[string]any{"minutes": 5}},
	}
}

func options(t *testing.T) Options {
	t.Helper()
	tag, err := filter.FromSpec("tag", "", "tags", filter.OpHas, nil)
	require.NoError(t, err)
	short, err := filter.FromSpec("short", "", "minutes", filter.OpLTE, nil)
	require.NoError(t, err)
	return Options{
		Filters:  filter.Index([]filter.Definition{tag, short}),
		Sortable: []string{"title", "minutes"},
	}
}

func TestDeriveViewPipeline(t *testing.T) {
	tests := []struct {
		name string
		st   State
		want []string
	}{
		{"default keeps input order", State{}, []string{"1", "2", "3", "4", "5"}},
		{"search title and description", State{SearchTerm: "go"}, []string{"1", "2", "4", "5"}},
		{"search then filter", State{SearchTerm: "go", ActiveFilters: map[string]any{"tag": "beginner"}}, []string{"1", "5"}},
		{"two filters AND", State{ActiveFilters: map[string]any{"tag": "beginner", "short": 5}}, []string{"1", "3", "5"}},
		{"unknown filter ignored", State{ActiveFilters: map[string]any{"nope": "x"}}, []string{"1", "2", "3", "4", "5"}},
		{"sort after filter", State{SearchTerm: "go", SortKey: "minutes", SortDirection: domain.SortDesc}, []string{"2", "4", "1", "5"}},
		{"unknown sort key degrades", State{SortKey: "author"}, []string{"1", "2", "3", "4", "5"}},
		{"undeclared sort key degrades", State{SortKey: "description"}, []string{"1", "2", "3", "4", "5"}},
		{"no match", State{SearchTerm: "haskell"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.IDs(DeriveView(lessons(), tt.st, options(t)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("visible ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveViewIsPure(t *testing.T) {
	in := lessons()
	st := State{SearchTerm: "basics", SortKey: "title", SortDirection: domain.SortDesc}

	first := DeriveView(in, st, options(t))
	second := DeriveView(in, st, options(t))

	assert.Equal(t, first, second)
	assert.Equal(t, domain.IDs(lessons()), domain.IDs(in), "input untouched")
}

func TestDeriveViewConjunctionProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	words := []string{"alpha", "beta", "gamma", "delta"}
	tags := []string{"x", "y", "z"}
	opts := options(t)

	for round := 0; round < 50; round++ {
		items := make([]domain.Item, 30)
		for i := range items {
			items[i] = domain.Item{
				Key:    fmt.Sprintf("i%d", i),
				Title:  words[r.Intn(len(words))] + " " + words[r.Intn(len(words))],
				Tags:   []string{tags[r.Intn(len(tags))]},
				Fields: map[string]any{"minutes": r.Intn(20)},
			}
		}
		st := State{
			SearchTerm:    words[r.Intn(len(words))][:3],
			ActiveFilters: map[string]any{"tag": tags[r.Intn(len(tags))], "short": 10},
		}

		visible := map[string]bool{}
		for _, id := range domain.IDs(DeriveView(items, st, opts)) {
			visible[id] = true
		}
		for _, it := range items {
			want := strings.Contains(strings.ToLower(it.Title), st.SearchTerm) &&
				it.Tags[0] == st.ActiveFilters["tag"] &&
				it.Fields["minutes"].(int) <= 10
			require.Equal(t, want, visible[it.Key], "item %s in round %d", it.Key, round)
		}
	}
}

func TestDeriveViewSortStability(t *testing.T) {
	in := lessons()
	for _, dir := range []domain.SortDirection{domain.SortAsc, domain.SortDesc} {
		got := domain.IDs(DeriveView(in, State{SortKey: "minutes", SortDirection: dir}, options(t)))
		var fives []string
		for _, id := range got {
			if id == "1" || id == "3" || id == "5" {
				fives = append(fives, id)
			}
		}
		assert.Equal(t, []string{"1", "3", "5"}, fives, "equal keys keep input order (%s)", dir)
	}
}

func TestStateIsDefault(t *testing.T) {
	assert.True(t, State{}.IsDefault())
	assert.True(t, State{ActiveFilters: map[string]any{"tag": ""}}.IsDefault())
	assert.False(t, State{SearchTerm: "x"}.IsDefault())
	assert.False(t, State{SortKey: "title"}.IsDefault())
	assert.False(t, State{ActiveFilters: map[string]any{"tag": "go"}}.IsDefault())
}

func TestView(t *testing.T) {
	v := NewView(DeriveView(lessons(), State{SearchTerm: "basics"}, Options{}))

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"1", "3"}, v.IDs())
	assert.Equal(t, 1, v.IndexOf("3"))
	assert.Equal(t, -1, v.IndexOf("2"))
	assert.False(t, v.Contains("4"))

	item, ok := v.At(0)
	require.True(t, ok)
	assert.Equal(t, "Go basics", item.Title)
	_, ok = v.At(5)
	assert.False(t, ok)
}
