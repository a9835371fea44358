package sorting

import (
	"sort"

	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

// Service handles sorting logic
type Service struct {
	state    *State
	sortable []string
	bus      eventbus.EventBus
	logger   *zap.Logger
}

// NewService creates a new sorting service. An empty sortable list accepts any field.
func NewService(bus eventbus.EventBus, sortable []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		state:    &State{},
		sortable: append([]string(nil), sortable...),
		bus:      bus,
		logger:   logger,
	}
}

// State returns the current sort state
func (s *Service) State() State {
	return *s.state
}

// Sortable returns the declared sortable fields
func (s *Service) Sortable() []string {
	return s.sortable
}

// SetSort sets the sort key and direction. Unknown keys are stored as-is and
// degrade to input order when the view is derived.
func (s *Service) SetSort(key string, dir domain.SortDirection) bool {
	if key == "" {
		dir = domain.SortAsc
	}
	next := State{Key: key, Direction: dir}
	if next == *s.state {
		return false
	}

	*s.state = next
	s.logger.Debug("sort changed", zap.String("key", key), zap.Stringer("direction", dir))
	s.bus.Publish(domain.SortChangedEvent{Key: key, Direction: dir})
	return true
}

// Toggle sorts by key ascending, or flips the direction if key is already active
func (s *Service) Toggle(key string) bool {
	if key != "" && key == s.state.Key {
		return s.SetSort(key, s.state.Direction.Flip())
	}
	return s.SetSort(key, domain.SortAsc)
}

// Flip reverses the direction of the active sort
func (s *Service) Flip() bool {
	if s.state.Key == "" {
		return false
	}
	return s.SetSort(s.state.Key, s.state.Direction.Flip())
}

// NextKey cycles through the sortable fields, ending with input order
func (s *Service) NextKey() bool {
	if len(s.sortable) == 0 {
		return false
	}
	keys := append(append([]string(nil), s.sortable...), "")

	currentIndex := len(keys) - 1
	for i, key := range keys {
		if key == s.state.Key {
			currentIndex = i
			break
		}
	}

	nextIndex := (currentIndex + 1) % len(keys)
	return s.SetSort(keys[nextIndex], s.state.Direction)
}

// Clear restores input order
func (s *Service) Clear() bool {
	return s.SetSort("", domain.SortAsc)
}

// Effective reports whether key would actually sort items: it must be declared
// sortable (when a list is declared) and present on at least one item
func Effective[T domain.Record](items []T, key string, sortable []string) bool {
	if key == "" {
		return false
	}
	if len(sortable) > 0 && !contains(sortable, key) {
		return false
	}
	for _, item := range items {
		if _, ok := item.Field(key); ok {
			return true
		}
	}
	return false
}

// Apply returns items stably sorted by key. Direction reverses the comparator,
// so equal keys keep their input order either way. Items without a value for
// key come last in both directions. Ineffective keys return input order.
func Apply[T domain.Record](items []T, key string, dir domain.SortDirection, sortable []string) []T {
	out := append([]T(nil), items...)
	if !Effective(items, key, sortable) {
		return out
	}

	// rows are keyed by position, not id, so duplicate ids keep their own values
	type row struct {
		item    T
		value   any
		present bool
	}
	rows := make([]row, len(out))
	values := make([]any, 0, len(out))
	for i, item := range out {
		v, ok := item.Field(key)
		rows[i] = row{item: item, value: v, present: ok && !domain.IsEmpty(v)}
		if rows[i].present {
			values = append(values, v)
		}
	}
	mode := domain.ModeOf(values)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.present || !b.present {
			return a.present && !b.present
		}
		c := domain.CompareAs(mode, a.value, b.value)
		if dir == domain.SortDesc {
			c = -c
		}
		return c < 0
	})
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
