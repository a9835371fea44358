package selection

import "collectionview/internal/domain"

// State holds selection state
type State struct {
	Selected map[string]bool
	Anchor   string // last id toggled by SelectOne, for range selection
}

// Catalog gives the service read access to the items it selects from
type Catalog interface {
	// Lookup finds an item in the current (unfiltered) item list
	Lookup(id string) (domain.Record, bool)
	// AllIDs lists every current item id in input order
	AllIDs() []string
	// VisibleIDs lists the visible item ids in display order
	VisibleIDs() []string
}
