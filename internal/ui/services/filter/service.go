package filter

import (
	"reflect"

	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

// Service tracks active filter values against declared definitions
type Service struct {
	state  *State
	defs   map[string]Definition
	order  []string
	bus    eventbus.EventBus
	logger *zap.Logger
}

// NewService creates a new filter service
func NewService(bus eventbus.EventBus, defs []Definition, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		state:  &State{Active: make(map[string]any)},
		defs:   make(map[string]Definition, len(defs)),
		bus:    bus,
		logger: logger,
	}
	for _, d := range defs {
		if d.ID == "" || d.Predicate == nil {
			logger.Warn("skipping incomplete filter definition", zap.String("id", d.ID))
			continue
		}
		if _, dup := s.defs[d.ID]; !dup {
			s.order = append(s.order, d.ID)
		}
		s.defs[d.ID] = d
	}
	return s
}

// SetValue activates filterID with value; an inactive value clears it.
// Unknown filter ids are ignored.
func (s *Service) SetValue(filterID string, value any) bool {
	if _, ok := s.defs[filterID]; !ok {
		s.logger.Debug("unknown filter ignored", zap.String("filter", filterID))
		return false
	}

	current, had := s.state.Active[filterID]
	if !IsActive(value) {
		if !had {
			return false
		}
		delete(s.state.Active, filterID)
		s.bus.Publish(domain.FilterChangedEvent{FilterID: filterID})
		return true
	}

	if had && reflect.DeepEqual(current, value) {
		return false
	}
	s.state.Active[filterID] = value
	s.bus.Publish(domain.FilterChangedEvent{FilterID: filterID, Value: value})
	return true
}

// CycleValue steps filterID through its declared values, then back to inactive
func (s *Service) CycleValue(filterID string) bool {
	def, ok := s.defs[filterID]
	if !ok || len(def.Values) == 0 {
		return false
	}

	current, had := s.state.Active[filterID]
	if !had {
		return s.SetValue(filterID, def.Values[0])
	}
	for i, v := range def.Values {
		if reflect.DeepEqual(v, current) {
			if i+1 < len(def.Values) {
				return s.SetValue(filterID, def.Values[i+1])
			}
			return s.SetValue(filterID, nil)
		}
	}
	return s.SetValue(filterID, nil)
}

// ClearAll deactivates every filter, one event per cleared filter
func (s *Service) ClearAll() bool {
	changed := false
	for _, id := range s.order {
		if s.SetValue(id, nil) {
			changed = true
		}
	}
	return changed
}

// Active returns a copy of the active filter values
func (s *Service) Active() map[string]any {
	out := make(map[string]any, len(s.state.Active))
	for k, v := range s.state.Active {
		out[k] = v
	}
	return out
}

// Value returns the active value of filterID
func (s *Service) Value(filterID string) (any, bool) {
	v, ok := s.state.Active[filterID]
	return v, ok
}

// Definitions returns the declared filters in declaration order
func (s *Service) Definitions() []Definition {
	out := make([]Definition, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.defs[id])
	}
	return out
}

// Lookup returns the definition for filterID
func (s *Service) Lookup(filterID string) (Definition, bool) {
	d, ok := s.defs[filterID]
	return d, ok
}

// IsActive reports whether a filter value constrains anything
func IsActive(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// Matches reports whether record satisfies every active filter.
// Active ids with no definition are ignored.
func Matches(record domain.Record, active map[string]any, defs map[string]Definition) bool {
	for id, value := range active {
		if !IsActive(value) {
			continue
		}
		def, ok := defs[id]
		if !ok {
			continue
		}
		if !def.Predicate(record, value) {
			return false
		}
	}
	return true
}

// Index builds the lookup map Matches expects
func Index(defs []Definition) map[string]Definition {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		if d.ID != "" && d.Predicate != nil {
			m[d.ID] = d
		}
	}
	return m
}
