package sorting

import "collectionview/internal/domain"

// State holds sorting state. An empty Key means input order.
type State struct {
	Key       string
	Direction domain.SortDirection
}

// IsDefault reports whether no sort is applied
func (s State) IsDefault() bool {
	return s.Key == ""
}
