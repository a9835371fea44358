package input

import (
	"collectionview/internal/domain"
	"collectionview/internal/ui/coordinator"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Coordinator *coordinator.Coordinator[domain.Item]
}

// CurrentIndex returns the cursor index into the visible list
func (c *ModelContext) CurrentIndex() int {
	return c.Coordinator.Cursor()
}

// TotalItems returns the number of visible items
func (c *ModelContext) TotalItems() int {
	return c.Coordinator.VisibleCount()
}

// HasSelection returns true if any items are selected
func (c *ModelContext) HasSelection() bool {
	return c.Coordinator.SelectedCount() > 0
}

// SearchTerm returns the active search term
func (c *ModelContext) SearchTerm() string {
	return c.Coordinator.Query().SearchTerm
}

// QueryActive reports a search term, filter or sort in effect
func (c *ModelContext) QueryActive() bool {
	return !c.Coordinator.Query().IsDefault()
}

// CanReorder reports whether dragging is available right now
func (c *ModelContext) CanReorder() bool {
	return c.Coordinator.CanReorder()
}

// Dragging reports an active drag
func (c *ModelContext) Dragging() bool {
	return c.Coordinator.DragState().Dragging()
}
