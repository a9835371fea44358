package coordinator

import (
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
	"collectionview/internal/ui/services/filter"
	"collectionview/internal/ui/services/navigation"
	"collectionview/internal/ui/services/query"
	"collectionview/internal/ui/services/reorder"
	"collectionview/internal/ui/services/search"
	"collectionview/internal/ui/services/selection"
	"collectionview/internal/ui/services/sorting"
)

// Coordinator manages all collection services and their interactions.
// It owns the query, selection, drag and view-mode state for one collection
// and re-derives the visible list whenever any of it changes. Every call is
// synchronous; events are published on the bus before the call returns.
type Coordinator[T domain.Record] struct {
	navigation *navigation.Service
	selection  *selection.Service
	search     *search.Service
	filter     *filter.Service
	sorting    *sorting.Service
	reorder    *reorder.Engine

	bus      eventbus.EventBus
	logger   *zap.Logger
	features Features
	viewMode domain.ViewMode

	items     []T
	index     map[string]int
	view      *query.View[T]
	queryOpts query.Options
}

// NewCoordinator creates a new coordinator with all services. A nil bus gets
// a private synchronous bus.
func NewCoordinator[T domain.Record](bus eventbus.EventBus, opts ...Option) *Coordinator[T] {
	cfg := settings{
		logger:   zap.NewNop(),
		features: AllFeatures(),
		viewMode: domain.ViewList,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if bus == nil {
		bus = eventbus.New(eventbus.WithLogger(cfg.logger))
	}

	c := &Coordinator[T]{
		bus:      bus,
		logger:   cfg.logger,
		features: cfg.features,
		viewMode: cfg.viewMode,
		index:    map[string]int{},
	}
	c.view = query.NewView[T](nil)

	qb := queryBus{EventBus: bus, refresh: c.refreshView}
	c.search = search.NewService(qb, cfg.searchFields, cfg.logger.Named("search"))
	c.filter = filter.NewService(qb, cfg.filters, cfg.logger.Named("filter"))
	c.sorting = sorting.NewService(qb, cfg.sortable, cfg.logger.Named("sorting"))
	c.selection = selection.NewService(bus, c, cfg.logger.Named("selection"))
	c.reorder = reorder.NewEngine(bus, c, cfg.logger.Named("reorder"))
	c.navigation = navigation.NewService(bus, func() int { return c.view.Len() })

	c.queryOpts = query.Options{
		SearchFields: c.search.Fields(),
		Filters:      filter.Index(c.filter.Definitions()),
		Sortable:     c.sorting.Sortable(),
	}

	return c
}

// queryBus re-derives the visible list before forwarding a query event.
// The view must not depend on the host bus delivering events back.
type queryBus struct {
	eventbus.EventBus
	refresh func()
}

func (b queryBus) Publish(event domain.DomainEvent) {
	b.refresh()
	b.EventBus.Publish(event)
}

// Close ends any drag in progress. The coordinator holds no bus
// subscriptions of its own.
func (c *Coordinator[T]) Close() {
	c.reorder.DragEnd()
}

// Bus returns the bus events are published on
func (c *Coordinator[T]) Bus() eventbus.EventBus {
	return c.bus
}

// Features returns the enabled capabilities
func (c *Coordinator[T]) Features() Features {
	return c.features
}

// Items

// SetItems replaces the item list. Selection and drag state referring to
// items that are gone are pruned, and the cursor is pulled back into range.
func (c *Coordinator[T]) SetItems(items []T) {
	c.items = append([]T(nil), items...)
	c.index = make(map[string]int, len(items))
	for i, item := range c.items {
		if _, dup := c.index[item.ID()]; dup {
			c.logger.Debug("duplicate item id, first wins", zap.String("id", item.ID()))
			continue
		}
		c.index[item.ID()] = i
	}

	c.refreshView()
	c.selection.Prune()
	c.afterViewChange()

	c.bus.Publish(domain.ItemsReplacedEvent{
		Total:   len(c.items),
		Visible: c.view.Len(),
	})
}

// Items returns the full item list in input order
func (c *Coordinator[T]) Items() []T {
	return c.items
}

// Item finds an item by id in the full list
func (c *Coordinator[T]) Item(id string) (T, bool) {
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Visible returns the derived visible list
func (c *Coordinator[T]) Visible() []T {
	return c.view.Items()
}

// VisibleIDs lists the visible item ids in display order
func (c *Coordinator[T]) VisibleIDs() []string {
	return c.view.IDs()
}

// Lookup finds an item in the current (unfiltered) item list
func (c *Coordinator[T]) Lookup(id string) (domain.Record, bool) {
	item, ok := c.Item(id)
	if !ok {
		return nil, false
	}
	return item, true
}

// AllIDs lists every current item id in input order
func (c *Coordinator[T]) AllIDs() []string {
	return domain.IDs(c.items)
}

// IsVisible reports whether id is in the visible list
func (c *Coordinator[T]) IsVisible(id string) bool {
	return c.view.Contains(id)
}

// TotalCount is the size of the full item list
func (c *Coordinator[T]) TotalCount() int {
	return len(c.items)
}

// VisibleCount is the size of the visible list
func (c *Coordinator[T]) VisibleCount() int {
	return c.view.Len()
}

// Query

// Query returns the current query state
func (c *Coordinator[T]) Query() query.State {
	sortState := c.sorting.State()
	return query.State{
		SearchTerm:    c.search.Term(),
		ActiveFilters: c.filter.Active(),
		SortKey:       sortState.Key,
		SortDirection: sortState.Direction,
	}
}

// SetSearch sets the search term
func (c *Coordinator[T]) SetSearch(term string) bool {
	if !c.features.Search {
		return false
	}
	return c.afterQueryChange(c.search.SetTerm(term))
}

// SetFilter activates filterID with value; a nil or empty value clears it
func (c *Coordinator[T]) SetFilter(filterID string, value any) bool {
	if !c.features.Filter {
		return false
	}
	return c.afterQueryChange(c.filter.SetValue(filterID, value))
}

// CycleFilter steps filterID through its declared values
func (c *Coordinator[T]) CycleFilter(filterID string) bool {
	if !c.features.Filter {
		return false
	}
	return c.afterQueryChange(c.filter.CycleValue(filterID))
}

// ClearFilters deactivates every filter
func (c *Coordinator[T]) ClearFilters() bool {
	if !c.features.Filter {
		return false
	}
	return c.afterQueryChange(c.filter.ClearAll())
}

// Filters returns the declared filters in declaration order
func (c *Coordinator[T]) Filters() []filter.Definition {
	return c.filter.Definitions()
}

// SetSort sorts by key in dir. An empty key restores input order.
func (c *Coordinator[T]) SetSort(key string, dir domain.SortDirection) bool {
	if !c.features.Sort {
		return false
	}
	return c.afterQueryChange(c.sorting.SetSort(key, dir))
}

// ToggleSort sorts by key ascending or flips it when already active
func (c *Coordinator[T]) ToggleSort(key string) bool {
	if !c.features.Sort {
		return false
	}
	return c.afterQueryChange(c.sorting.Toggle(key))
}

// CycleSort moves to the next declared sort field
func (c *Coordinator[T]) CycleSort() bool {
	if !c.features.Sort {
		return false
	}
	return c.afterQueryChange(c.sorting.NextKey())
}

// FlipSort reverses the active sort direction
func (c *Coordinator[T]) FlipSort() bool {
	if !c.features.Sort {
		return false
	}
	return c.afterQueryChange(c.sorting.Flip())
}

// Sortable returns the declared sortable fields
func (c *Coordinator[T]) Sortable() []string {
	return c.sorting.Sortable()
}

// ResetQuery clears search, filters and sort
func (c *Coordinator[T]) ResetQuery() bool {
	changed := false
	if c.features.Search && c.search.Clear() {
		changed = true
	}
	if c.features.Filter && c.filter.ClearAll() {
		changed = true
	}
	if c.features.Sort && c.sorting.Clear() {
		changed = true
	}
	return c.afterQueryChange(changed)
}

// Selection

// SelectOne adds or removes id from the selection
func (c *Coordinator[T]) SelectOne(id string, selected bool) bool {
	if !c.features.Selection {
		return false
	}
	return c.selection.SelectOne(id, selected)
}

// ToggleSelected flips the selection of id
func (c *Coordinator[T]) ToggleSelected(id string) bool {
	if !c.features.Selection {
		return false
	}
	return c.selection.Toggle(id)
}

// SelectRange extends the selection from the last toggled item to id
func (c *Coordinator[T]) SelectRange(id string) bool {
	if !c.features.Selection {
		return false
	}
	return c.selection.SelectRange(id)
}

// SelectAll selects every selectable visible item
func (c *Coordinator[T]) SelectAll() bool {
	if !c.features.Selection {
		return false
	}
	return c.selection.SelectAll()
}

// SelectNone clears the selection
func (c *Coordinator[T]) SelectNone() bool {
	if !c.features.Selection {
		return false
	}
	return c.selection.SelectNone()
}

// ToggleSelectAll completes a partial selection, or clears a full one
func (c *Coordinator[T]) ToggleSelectAll() bool {
	if !c.features.Selection {
		return false
	}
	return c.selection.ToggleSelectAll()
}

// SetSelection re-supplies the selection as a controlled value
func (c *Coordinator[T]) SetSelection(ids []string) {
	if !c.features.Selection {
		return
	}
	c.selection.SetSelection(ids)
}

// IsSelected reports whether id is selected
func (c *Coordinator[T]) IsSelected(id string) bool {
	return c.selection.IsSelected(id)
}

// IsAllSelected reports whether every selectable visible item is selected
func (c *Coordinator[T]) IsAllSelected() bool {
	return c.selection.IsAllSelected()
}

// IsSomeSelected reports a non-empty partial selection
func (c *Coordinator[T]) IsSomeSelected() bool {
	return c.selection.IsSomeSelected()
}

// Selected returns the selected ids in item order
func (c *Coordinator[T]) Selected() []string {
	return c.selection.Selected()
}

// SelectedCount is the size of the selection
func (c *Coordinator[T]) SelectedCount() int {
	return c.selection.Count()
}

// Reorder

// CanReorder reports whether drag handles should be offered. Reordering is
// defined over the full list, so any search, filter or sort turns it off.
func (c *Coordinator[T]) CanReorder() bool {
	return c.features.Reorder && c.Query().IsDefault()
}

// DragState returns the in-progress drag
func (c *Coordinator[T]) DragState() reorder.State {
	return c.reorder.State()
}

// DragStart begins dragging id
func (c *Coordinator[T]) DragStart(id string) bool {
	if !c.CanReorder() {
		c.logger.Debug("reorder unavailable", zap.String("id", id))
		return false
	}
	return c.reorder.DragStart(id)
}

// DragOver moves the drop target to id
func (c *Coordinator[T]) DragOver(id string) bool {
	if !c.CanReorder() {
		return false
	}
	return c.reorder.DragOver(id)
}

// Drop commits the drag onto id, or onto the current drop target when id is
// empty. The new order is published as ItemsReordered; the item list itself
// is left to the caller to re-supply.
func (c *Coordinator[T]) Drop(id string) bool {
	if !c.CanReorder() {
		c.reorder.DragEnd()
		return false
	}
	return c.reorder.Drop(id) != nil
}

// DragEnd abandons the drag without reordering
func (c *Coordinator[T]) DragEnd() bool {
	return c.reorder.DragEnd()
}

// View mode

// ViewMode returns the rendering hint
func (c *Coordinator[T]) ViewMode() domain.ViewMode {
	return c.viewMode
}

// SetViewMode switches the rendering hint
func (c *Coordinator[T]) SetViewMode(mode domain.ViewMode) bool {
	if !c.features.ViewModeSwitching || !mode.Valid() || mode == c.viewMode {
		return false
	}
	c.viewMode = mode
	c.bus.Publish(domain.ViewModeChangedEvent{Mode: mode})
	return true
}

// CycleViewMode moves to the next view mode
func (c *Coordinator[T]) CycleViewMode() bool {
	return c.SetViewMode(c.viewMode.Next())
}

// Activation

// Activate opens id. Only visible, enabled items can be activated.
func (c *Coordinator[T]) Activate(id string) bool {
	item, ok := c.Item(id)
	if !ok || !c.view.Contains(id) || item.IsDisabled() {
		c.logger.Debug("activation rejected", zap.String("id", id))
		return false
	}
	c.bus.Publish(domain.ItemActivatedEvent{ID: id, Item: item})
	return true
}

// ActivateCursor activates the item under the cursor
func (c *Coordinator[T]) ActivateCursor() bool {
	item, ok := c.CursorItem()
	if !ok {
		return false
	}
	return c.Activate(item.ID())
}

// Cursor

// Cursor returns the cursor index into the visible list
func (c *Coordinator[T]) Cursor() int {
	return c.navigation.Cursor()
}

// CursorItem returns the item under the cursor
func (c *Coordinator[T]) CursorItem() (T, bool) {
	return c.view.At(c.navigation.Cursor())
}

// Navigate moves the cursor
func (c *Coordinator[T]) Navigate(direction navigation.Direction) {
	c.navigation.Navigate(direction)
}

// MoveCursor puts the cursor on index
func (c *Coordinator[T]) MoveCursor(index int) {
	c.navigation.MoveToIndex(index)
}

// MoveCursorTo puts the cursor on the visible item id
func (c *Coordinator[T]) MoveCursorTo(id string) bool {
	i := c.view.IndexOf(id)
	if i < 0 {
		return false
	}
	c.navigation.MoveToIndex(i)
	return true
}

// ViewportOffset returns the index of the first visible row on screen
func (c *Coordinator[T]) ViewportOffset() int {
	return c.navigation.ViewportOffset()
}

// ViewportHeight returns the number of rows on screen
func (c *Coordinator[T]) ViewportHeight() int {
	return c.navigation.ViewportHeight()
}

// SetViewportHeight updates viewport height from the terminal height
func (c *Coordinator[T]) SetViewportHeight(height int) {
	c.navigation.SetViewportHeight(height)
}

// SetViewportRows sets the number of item rows on screen
func (c *Coordinator[T]) SetViewportRows(rows int) {
	c.navigation.SetViewportRows(rows)
}

// SetColumns sets how many items share a row on screen
func (c *Coordinator[T]) SetColumns(columns int) {
	c.navigation.SetColumns(columns)
}

func (c *Coordinator[T]) refreshView() {
	c.view = query.NewView(query.DeriveView(c.items, c.Query(), c.queryOpts))
}

// afterQueryChange runs the follow-ups of a query change once its own event
// has been delivered. The view itself was re-derived by queryBus.
func (c *Coordinator[T]) afterQueryChange(changed bool) bool {
	if changed {
		if c.reorder.State().Dragging() && !c.CanReorder() {
			c.reorder.DragEnd()
		}
		c.afterViewChange()
	}
	return changed
}

func (c *Coordinator[T]) afterViewChange() {
	c.reorder.Prune()
	c.navigation.Clamp()
}
