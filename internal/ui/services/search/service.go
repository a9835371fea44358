package search

import (
	"strings"

	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/eventbus"
)

// Service handles search functionality
type Service struct {
	state  *State
	bus    eventbus.EventBus
	logger *zap.Logger
}

// NewService creates a new search service. Empty fields fall back to DefaultFields.
func NewService(bus eventbus.EventBus, fields []string, logger *zap.Logger) *Service {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		state: &State{
			Fields: append([]string(nil), fields...),
		},
		bus:    bus,
		logger: logger,
	}
}

// SetTerm updates the search term
func (s *Service) SetTerm(term string) bool {
	if term == s.state.Term {
		return false // Same search
	}

	s.state.Term = term
	s.logger.Debug("search changed", zap.String("term", term))
	s.bus.Publish(domain.SearchChangedEvent{Term: term})
	return true
}

// Clear clears the current search
func (s *Service) Clear() bool {
	return s.SetTerm("")
}

// Term returns the current search term
func (s *Service) Term() string {
	return s.state.Term
}

// Fields returns the searched fields
func (s *Service) Fields() []string {
	return s.state.Fields
}

// Matches reports whether record matches term on any of fields,
// case-insensitively. An empty term matches everything.
func Matches(record domain.Record, term string, fields []string) bool {
	if term == "" {
		return true
	}
	return MatchesLower(record, strings.ToLower(term), fields)
}

// MatchesLower is Matches with an already lower-cased term
func MatchesLower(record domain.Record, lowerTerm string, fields []string) bool {
	if lowerTerm == "" {
		return true
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	for _, field := range fields {
		v, ok := record.Field(field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(domain.FieldText(v)), lowerTerm) {
			return true
		}
	}
	return false
}

// Highlight splits text around the first case-insensitive match of term,
// for renderers that emphasise matches
func Highlight(text, term string) (before, match, after string, ok bool) {
	if term == "" {
		return text, "", "", false
	}
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// byte offsets would not line up
		return text, "", "", false
	}
	lowerTerm := strings.ToLower(term)
	idx := strings.Index(lower, lowerTerm)
	if idx < 0 {
		return text, "", "", false
	}
	// offsets are taken in the lower-cased text, which has text's byte layout
	end := idx + len(lowerTerm)
	return text[:idx], text[idx:end], text[end:], true
}
