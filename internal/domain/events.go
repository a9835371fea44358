package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventSearchChanged    EventType = "SearchChanged"
	EventFilterChanged    EventType = "FilterChanged"
	EventSortChanged      EventType = "SortChanged"
	EventViewModeChanged  EventType = "ViewModeChanged"
	EventItemsReordered   EventType = "ItemsReordered"
	EventItemActivated    EventType = "ItemActivated"
	EventDragStateChanged EventType = "DragStateChanged"
	EventCursorMoved      EventType = "CursorMoved"
	EventItemsReplaced    EventType = "ItemsReplaced"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent carries the full selection after a change, in item order
type SelectionChangedEvent struct {
	IDs []string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SearchChangedEvent is emitted when the search term changes
type SearchChangedEvent struct {
	Term string
}

func (e SearchChangedEvent) Type() EventType { return EventSearchChanged }

// FilterChangedEvent is emitted when a filter value is set or cleared.
// A nil Value means the filter was cleared.
type FilterChangedEvent struct {
	FilterID string
	Value    any
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// SortChangedEvent is emitted when the sort key or direction changes.
// An empty Key means input order.
type SortChangedEvent struct {
	Key       string
	Direction SortDirection
}

func (e SortChangedEvent) Type() EventType { return EventSortChanged }

// ViewModeChangedEvent is emitted when the view mode changes
type ViewModeChangedEvent struct {
	Mode ViewMode
}

func (e ViewModeChangedEvent) Type() EventType { return EventViewModeChanged }

// ItemsReorderedEvent carries the committed full-list order after a drop
type ItemsReorderedEvent struct {
	Order []string
}

func (e ItemsReorderedEvent) Type() EventType { return EventItemsReordered }

// ItemActivatedEvent is emitted for a plain click/open on an item
type ItemActivatedEvent struct {
	ID   string
	Item Record
}

func (e ItemActivatedEvent) Type() EventType { return EventItemActivated }

// DragStateChangedEvent drives drop-zone highlighting.
// Both ids empty means the drag ended.
type DragStateChangedEvent struct {
	DraggedID    string
	DropTargetID string
}

func (e DragStateChangedEvent) Type() EventType { return EventDragStateChanged }

// CursorMovedEvent is emitted when the cursor moves within the visible set
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// ItemsReplacedEvent is emitted after the caller re-supplies the item list
type ItemsReplacedEvent struct {
	Total   int
	Visible int
}

func (e ItemsReplacedEvent) Type() EventType { return EventItemsReplaced }
