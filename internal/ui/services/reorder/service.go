package reorder

import (
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

// Engine is the drag-and-drop state machine: Idle -> Dragging -> Idle.
// Whether reordering is allowed at all is decided by the caller.
type Engine struct {
	state   State
	bus     eventbus.EventBus
	catalog Catalog
	logger  *zap.Logger
}

// NewEngine creates a new reorder engine
func NewEngine(bus eventbus.EventBus, catalog Catalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		bus:     bus,
		catalog: catalog,
		logger:  logger,
	}
}

// State returns the current drag state
func (e *Engine) State() State {
	return e.state
}

// DragStart begins dragging id. Unknown, hidden and disabled items are rejected.
// Starting while already dragging replaces the abandoned gesture.
func (e *Engine) DragStart(id string) bool {
	if !e.draggable(id) {
		e.logger.Debug("drag start rejected", zap.String("id", id))
		return false
	}
	if e.state.Dragging() && e.state.DraggedID != id {
		e.logger.Debug("replacing abandoned drag", zap.String("previous", e.state.DraggedID))
	}

	next := State{DraggedID: id}
	if next == e.state {
		return false
	}
	e.state = next
	e.publishState()
	return true
}

// DragOver moves the drop target. Repeating the same target changes nothing.
func (e *Engine) DragOver(id string) bool {
	if !e.state.Dragging() || !e.catalog.IsVisible(id) {
		return false
	}
	if e.state.DropTargetID == id {
		return false
	}
	e.state.DropTargetID = id
	e.publishState()
	return true
}

// Drop commits the drag onto id (the current drop target when id is empty)
// and returns to idle. Returns the committed order, or nil when nothing moved.
func (e *Engine) Drop(id string) []string {
	if !e.state.Dragging() {
		return nil
	}
	if id == "" {
		id = e.state.DropTargetID
	}
	dragged := e.state.DraggedID
	e.reset()

	if id == "" || id == dragged || !e.catalog.IsVisible(id) {
		return nil
	}
	if _, ok := e.catalog.Lookup(dragged); !ok {
		return nil
	}

	order := MoveIDs(e.catalog.AllIDs(), dragged, id)
	e.logger.Debug("items reordered", zap.String("dragged", dragged), zap.String("target", id))
	e.bus.Publish(domain.ItemsReorderedEvent{Order: order})
	return order
}

// DragEnd abandons the gesture without reordering
func (e *Engine) DragEnd() bool {
	if !e.state.Dragging() {
		return false
	}
	e.reset()
	return true
}

// Cancel is DragEnd under the name hosts use for explicit aborts
func (e *Engine) Cancel() bool {
	return e.DragEnd()
}

// Prune clears references to items that left the list or the visible set
func (e *Engine) Prune() bool {
	if !e.state.Dragging() {
		return false
	}
	if !e.draggable(e.state.DraggedID) {
		e.logger.Debug("dragged item vanished", zap.String("id", e.state.DraggedID))
		e.reset()
		return true
	}
	if e.state.DropTargetID != "" && !e.catalog.IsVisible(e.state.DropTargetID) {
		e.state.DropTargetID = ""
		e.publishState()
		return true
	}
	return false
}

func (e *Engine) draggable(id string) bool {
	if id == "" || !e.catalog.IsVisible(id) {
		return false
	}
	item, ok := e.catalog.Lookup(id)
	return ok && !item.IsDisabled()
}

func (e *Engine) reset() {
	e.state = State{}
	e.publishState()
}

func (e *Engine) publishState() {
	e.bus.Publish(domain.DragStateChangedEvent{
		DraggedID:    e.state.DraggedID,
		DropTargetID: e.state.DropTargetID,
	})
}
