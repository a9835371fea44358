package selection

import (
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

// Service handles selection logic. Selection is keyed by item id so it
// survives filtering and reordering.
type Service struct {
	state   *State
	bus     eventbus.EventBus
	catalog Catalog
	logger  *zap.Logger
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus, catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		state: &State{
			Selected: make(map[string]bool),
		},
		bus:     bus,
		catalog: catalog,
		logger:  logger,
	}
}

// SelectOne adds or removes id. Unknown and disabled items are rejected.
func (s *Service) SelectOne(id string, selected bool) bool {
	if !s.selectable(id) {
		s.logger.Debug("selection rejected", zap.String("id", id))
		return false
	}

	s.state.Anchor = id
	if s.state.Selected[id] == selected {
		return false
	}

	if selected {
		s.state.Selected[id] = true
	} else {
		delete(s.state.Selected, id)
	}
	s.publish()
	return true
}

// Toggle flips the selection of id
func (s *Service) Toggle(id string) bool {
	return s.SelectOne(id, !s.state.Selected[id])
}

// SelectRange selects every selectable visible item between the anchor and toID
func (s *Service) SelectRange(toID string) bool {
	if s.state.Anchor == "" || !s.selectable(toID) {
		return false
	}

	visible := s.catalog.VisibleIDs()
	from, to := indexOf(visible, s.state.Anchor), indexOf(visible, toID)
	if from < 0 || to < 0 {
		return false
	}
	if from > to {
		from, to = to, from
	}

	changed := false
	for _, id := range visible[from : to+1] {
		if s.selectable(id) && !s.state.Selected[id] {
			s.state.Selected[id] = true
			changed = true
		}
	}

	if changed {
		s.publish()
	}
	return changed
}

// SelectAll replaces the selection with every selectable visible item
func (s *Service) SelectAll() bool {
	next := make(map[string]bool)
	for _, id := range s.selectableVisible() {
		next[id] = true
	}
	return s.replace(next)
}

// SelectNone clears the selection
func (s *Service) SelectNone() bool {
	s.state.Anchor = ""
	return s.replace(make(map[string]bool))
}

// ToggleSelectAll clears when every visible item is selected, otherwise
// completes the selection. Partial selection counts as "not all".
func (s *Service) ToggleSelectAll() bool {
	if s.IsAllSelected() {
		return s.SelectNone()
	}
	return s.SelectAll()
}

// SetSelection re-supplies the selection as a controlled value. Unknown and
// disabled ids are dropped. No event is published since the caller owns the value.
func (s *Service) SetSelection(ids []string) {
	next := make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.selectable(id) {
			next[id] = true
		}
	}
	s.state.Selected = next
}

// Prune drops ids no longer present in the item list
func (s *Service) Prune() bool {
	var removed []string
	for id := range s.state.Selected {
		if _, ok := s.catalog.Lookup(id); !ok {
			removed = append(removed, id)
		}
	}
	if s.state.Anchor != "" {
		if _, ok := s.catalog.Lookup(s.state.Anchor); !ok {
			s.state.Anchor = ""
		}
	}
	if len(removed) == 0 {
		return false
	}

	for _, id := range removed {
		delete(s.state.Selected, id)
	}
	s.logger.Debug("pruned stale selection", zap.Strings("ids", removed))
	s.publish()
	return true
}

// IsSelected checks if an item is selected
func (s *Service) IsSelected(id string) bool {
	return s.state.Selected[id]
}

// IsAllSelected is true when the selectable visible set is non-empty and fully selected
func (s *Service) IsAllSelected() bool {
	visible := s.selectableVisible()
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if !s.state.Selected[id] {
			return false
		}
	}
	return true
}

// IsSomeSelected is true when something is selected but not everything
func (s *Service) IsSomeSelected() bool {
	return len(s.state.Selected) > 0 && !s.IsAllSelected()
}

// Selected returns the selected ids in item order
func (s *Service) Selected() []string {
	selected := make([]string, 0, len(s.state.Selected))
	for _, id := range s.catalog.AllIDs() {
		if s.state.Selected[id] {
			selected = append(selected, id)
		}
	}
	return selected
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return len(s.state.Selected)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.state.Selected) > 0
}

func (s *Service) selectable(id string) bool {
	if id == "" {
		return false
	}
	item, ok := s.catalog.Lookup(id)
	return ok && !item.IsDisabled()
}

func (s *Service) selectableVisible() []string {
	visible := s.catalog.VisibleIDs()
	out := make([]string, 0, len(visible))
	for _, id := range visible {
		if s.selectable(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Service) replace(next map[string]bool) bool {
	if sameSet(s.state.Selected, next) {
		return false
	}
	s.state.Selected = next
	s.publish()
	return true
}

func (s *Service) publish() {
	s.bus.Publish(domain.SelectionChangedEvent{IDs: s.Selected()})
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
