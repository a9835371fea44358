package filter

import "collectionview/internal/domain"

// Predicate decides whether record passes the filter for the active value
type Predicate func(record domain.Record, value any) bool

// Definition declares a filter the collection offers
type Definition struct {
	ID        string
	Label     string
	Predicate Predicate
	// Values lists the choices a UI may cycle through. Optional.
	Values []any
}

// State holds filter state
type State struct {
	Active map[string]any
}

// Operators understood by FromSpec
const (
	OpEquals   = "equals"
	OpContains = "contains"
	OpHas      = "has"
	OpTruthy   = "truthy"
	OpGTE      = "gte"
	OpLTE      = "lte"
)
