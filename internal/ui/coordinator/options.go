package coordinator

import (
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/filter"
)

// Features switches whole capabilities on or off. A disabled capability turns
// its operations into silent no-ops.
type Features struct {
	Selection         bool
	Search            bool
	Filter            bool
	Sort              bool
	Reorder           bool
	ViewModeSwitching bool
}

// AllFeatures enables everything
func AllFeatures() Features {
	return Features{
		Selection:         true,
		Search:            true,
		Filter:            true,
		Sort:              true,
		Reorder:           true,
		ViewModeSwitching: true,
	}
}

type settings struct {
	logger       *zap.Logger
	features     Features
	searchFields []string
	filters      []filter.Definition
	sortable     []string
	viewMode     domain.ViewMode
}

// Option configures a Coordinator
type Option func(*settings)

// WithLogger sets the logger used by the coordinator and its services
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFeatures replaces the default (all enabled) feature set
func WithFeatures(f Features) Option {
	return func(s *settings) {
		s.features = f
	}
}

// WithSearchFields sets which fields the search term is matched against
func WithSearchFields(fields ...string) Option {
	return func(s *settings) {
		s.searchFields = fields
	}
}

// WithFilters declares the filters the collection offers
func WithFilters(defs ...filter.Definition) Option {
	return func(s *settings) {
		s.filters = append(s.filters, defs...)
	}
}

// WithSortable declares the fields that may be used as sort keys
func WithSortable(fields ...string) Option {
	return func(s *settings) {
		s.sortable = fields
	}
}

// WithViewMode sets the initial view mode
func WithViewMode(mode domain.ViewMode) Option {
	return func(s *settings) {
		if mode.Valid() {
			s.viewMode = mode
		}
	}
}
