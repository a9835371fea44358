package navigation

import (
	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

// Service moves a cursor over the visible set. The set is never stored here;
// countFn is asked for its current size on every move.
type Service struct {
	state   *State
	bus     eventbus.EventBus
	countFn func() int
}

// NewService creates a new navigation service
func NewService(bus eventbus.EventBus, countFn func() int) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 20, // updated on the first resize
			Columns:        1,
		},
		bus:     bus,
		countFn: countFn,
	}
}

// Cursor returns current cursor position
func (s *Service) Cursor() int {
	return s.state.Cursor
}

// ViewportOffset returns the index of the first row on screen
func (s *Service) ViewportOffset() int {
	return s.state.ViewportOffset
}

// ViewportHeight returns how many rows fit on screen
func (s *Service) ViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height from the terminal height
func (s *Service) SetViewportHeight(height int) {
	effective := height - ReservedRows
	if effective < 1 {
		effective = 1
	}
	s.state.ViewportHeight = effective
	s.ensureVisible()
}

// SetViewportRows sets the number of rows on screen directly, for layouts
// whose rows are taller than one line
func (s *Service) SetViewportRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	s.state.ViewportHeight = rows
	s.ensureVisible()
}

// SetColumns sets how many items share a row. Grid layouts use more than one,
// which makes up and down jump whole rows.
func (s *Service) SetColumns(columns int) {
	if columns < 1 {
		columns = 1
	}
	s.state.Columns = columns
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	cols := s.state.Columns
	page := (s.state.ViewportHeight - 1) * cols
	if page < cols {
		page = cols
	}

	target := s.state.Cursor
	switch direction {
	case DirectionUp:
		target -= cols
	case DirectionDown:
		target += cols
	case DirectionLeft:
		target--
	case DirectionRight:
		target++
	case DirectionPageUp:
		target -= page
	case DirectionPageDown:
		target += page
	case DirectionHome:
		target = 0
	case DirectionEnd:
		target = s.count() - 1
	}

	// stepping past the edge of a grid row stays put
	if (direction == DirectionUp || direction == DirectionDown) && (target < 0 || target >= s.count()) {
		return
	}
	s.MoveToIndex(target)
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	old := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()

	if old != s.state.Cursor {
		s.bus.Publish(domain.CursorMovedEvent{
			OldIndex: old,
			NewIndex: s.state.Cursor,
		})
	}
}

// Clamp pulls the cursor back inside the visible set after it shrank
func (s *Service) Clamp() {
	s.MoveToIndex(s.state.Cursor)
}

func (s *Service) count() int {
	if s.countFn == nil {
		return 0
	}
	return s.countFn()
}

func (s *Service) clampIndex(index int) int {
	last := s.count() - 1
	if index > last {
		index = last
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	row := s.state.Cursor / s.state.Columns
	offsetRow := s.state.ViewportOffset / s.state.Columns

	if row < offsetRow {
		offsetRow = row
	} else if row >= offsetRow+s.state.ViewportHeight {
		offsetRow = row - s.state.ViewportHeight + 1
	}
	s.state.ViewportOffset = offsetRow * s.state.Columns
}
