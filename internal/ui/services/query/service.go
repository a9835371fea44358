package query

import (
	"strings"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/filter"
	"collectionview/internal/ui/services/search"
	"collectionview/internal/ui/services/sorting"
)

// DeriveView returns the visible, ordered subset of items. It runs
// search, then filters, then sort, so sorting only sees the reduced set and
// ties fall back to filtered input order. The input slice is never modified.
func DeriveView[T domain.Record](items []T, st State, opts Options) []T {
	lowerTerm := strings.ToLower(st.SearchTerm)

	reduced := make([]T, 0, len(items))
	for _, item := range items {
		if !search.MatchesLower(item, lowerTerm, opts.SearchFields) {
			continue
		}
		if !filter.Matches(item, st.ActiveFilters, opts.Filters) {
			continue
		}
		reduced = append(reduced, item)
	}

	if st.SortKey == "" {
		return reduced
	}
	return sorting.Apply(reduced, st.SortKey, st.SortDirection, opts.Sortable)
}

// View is a derived visible set with id lookups
type View[T domain.Record] struct {
	items []T
	index map[string]int
}

// NewView wraps an already derived item list
func NewView[T domain.Record](items []T) *View[T] {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID()] = i
	}
	return &View[T]{items: items, index: index}
}

// Items returns the visible items in order
func (v *View[T]) Items() []T {
	return v.items
}

// Len returns the number of visible items
func (v *View[T]) Len() int {
	return len(v.items)
}

// At returns the item at index
func (v *View[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(v.items) {
		return zero, false
	}
	return v.items[index], true
}

// IndexOf returns the position of id, or -1
func (v *View[T]) IndexOf(id string) int {
	if i, ok := v.index[id]; ok {
		return i
	}
	return -1
}

// Contains reports whether id is visible
func (v *View[T]) Contains(id string) bool {
	_, ok := v.index[id]
	return ok
}

// IDs returns the visible ids in order
func (v *View[T]) IDs() []string {
	return domain.IDs(v.items)
}
