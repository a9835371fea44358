package sorting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

func items() []domain.Item {
	return []domain.Item{
		{Key: "a", Title: "beta", Fields: map[string]any{"minutes": 10}},
		{Key: "b", Title: "Alpha", Fields: map[string]any{"minutes": 5}},
		{Key: "c", Title: "alpha", Fields: map[string]any{"minutes": 10}},
		{Key: "d", Title: "Gamma"},
		{Key: "e", Title: "beta", Fields: map[string]any{"minutes": 120}},
	}
}

func TestApplyStringsCodePointOrder(t *testing.T) {
	got := domain.IDs(Apply(items(), "title", domain.SortAsc, nil))
	// upper case sorts before lower case; equal titles keep input order
	want := []string{"b", "d", "c", "a", "e"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted ids mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDescendingKeepsTiesStable(t *testing.T) {
	got := domain.IDs(Apply(items(), "title", domain.SortDesc, nil))
	want := []string{"a", "e", "c", "d", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted ids mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyNumericWithMissingLast(t *testing.T) {
	asc := domain.IDs(Apply(items(), "minutes", domain.SortAsc, nil))
	assert.Equal(t, []string{"b", "a", "c", "e", "d"}, asc, "120 sorts after 10 numerically")

	desc := domain.IDs(Apply(items(), "minutes", domain.SortDesc, nil))
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, desc, "missing still last, ties in input order")
}

func TestApplyUnknownKeyDegrades(t *testing.T) {
	in := items()
	assert.Equal(t, domain.IDs(in), domain.IDs(Apply(in, "author", domain.SortAsc, nil)), "field on no item")
	assert.Equal(t, domain.IDs(in), domain.IDs(Apply(in, "minutes", domain.SortAsc, []string{"title"})), "not declared sortable")
	assert.Equal(t, domain.IDs(in), domain.IDs(Apply(in, "", domain.SortDesc, nil)))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := items()
	before := domain.IDs(in)
	_ = Apply(in, "title", domain.SortAsc, nil)
	assert.Equal(t, before, domain.IDs(in))
}

func TestApplyNumericStringsStayText(t *testing.T) {
	in := []domain.Item{{Key: "nine", Title: "9"}, {Key: "ten", Title: "10"}}
	assert.Equal(t, []string{"ten", "nine"}, domain.IDs(Apply(in, "title", domain.SortAsc, nil)))
}

func TestApplyMixedValuesIndependentOfInputOrder(t *testing.T) {
	values := map[string]any{"a": 10, "b": "9", "c": "1a", "d": 2.5}
	orders := [][]string{
		{"a", "b", "c", "d"},
		{"c", "b", "a", "d"},
		{"b", "d", "c", "a"},
		{"d", "c", "a", "b"},
	}

	var want []string
	for _, order := range orders {
		in := make([]domain.Item, 0, len(order))
		for _, id := range order {
			in = append(in, domain.Item{Key: id, Fields: map[string]any{"rank": values[id]}})
		}
		got := domain.IDs(Apply(in, "rank", domain.SortAsc, nil))
		if want == nil {
			want = got
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("order depends on input %v (-want +got):\n%s", order, diff)
		}
	}
	// mixed kinds compare as text: "10" < "1a" < "2.5" < "9"
	assert.Equal(t, []string{"a", "c", "d", "b"}, want)
}

func TestApplyDuplicateIDsKeepOwnValues(t *testing.T) {
	in := []domain.Item{{Key: "x", Title: "Z"}, {Key: "y", Title: "M"}, {Key: "x", Title: "A"}}
	got := Apply(in, "title", domain.SortAsc, nil)
	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	assert.Equal(t, []string{"A", "M", "Z"}, titles)
}

func TestServiceToggleAndCycle(t *testing.T) {
	bus := eventbus.New()
	rec, unsub := eventbus.Record(bus)
	defer unsub()
	s := NewService(bus, []string{"title", "minutes"}, nil)

	assert.True(t, s.Toggle("title"))
	assert.True(t, s.Toggle("title"))
	assert.Equal(t, State{Key: "title", Direction: domain.SortDesc}, s.State())

	assert.True(t, s.NextKey())
	assert.Equal(t, "minutes", s.State().Key)
	assert.True(t, s.NextKey())
	assert.True(t, s.State().IsDefault())
	assert.Equal(t, domain.SortAsc, s.State().Direction, "clearing the key resets the direction")

	assert.False(t, s.Clear())
	assert.False(t, s.Flip(), "nothing to flip without a key")

	assert.Len(t, rec.Events(), 4)
	assert.Equal(t, domain.SortChangedEvent{Key: "title", Direction: domain.SortAsc}, rec.Events()[0])
}
