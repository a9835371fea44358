package reorder

import "collectionview/internal/domain"

// State holds the in-progress drag. Both ids empty means idle.
type State struct {
	DraggedID    string
	DropTargetID string
}

// Dragging reports whether a drag is in progress
func (s State) Dragging() bool {
	return s.DraggedID != ""
}

// Catalog gives the engine read access to the full item list and the visible set
type Catalog interface {
	Lookup(id string) (domain.Record, bool)
	IsVisible(id string) bool
	AllIDs() []string
}
