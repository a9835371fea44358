package query

import (
	"collectionview/internal/domain"
	"collectionview/internal/ui/services/filter"
)

// State is everything that shapes the visible set
type State struct {
	SearchTerm    string
	ActiveFilters map[string]any
	SortKey       string
	SortDirection domain.SortDirection
}

// IsDefault reports whether the state leaves the item list untouched:
// no search term, no active filter, no sort key
func (s State) IsDefault() bool {
	if s.SearchTerm != "" || s.SortKey != "" {
		return false
	}
	for _, v := range s.ActiveFilters {
		if filter.IsActive(v) {
			return false
		}
	}
	return true
}

// Options is the configuration side of the query
type Options struct {
	SearchFields []string
	Filters      map[string]filter.Definition
	Sortable     []string
}
