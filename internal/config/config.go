package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/ui/services/filter"
	"collectionview/internal/ui/services/search"
)

// FileName is the project-local config file looked up in the working directory
const FileName = ".collectionview.toml"

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Collection CollectionConfig `toml:"collection"`
	Features   FeatureConfig    `toml:"features"`
	Filters    []FilterConfig   `toml:"filters,omitempty"`
	Source     SourceConfig     `toml:"source"`
	UISettings UISettings       `toml:"ui"`

	// dir is where the file was loaded from; relative source paths resolve against it
	dir string
}

// CollectionConfig declares what the collection can be searched and sorted by
type CollectionConfig struct {
	SearchFields  []string `toml:"search_fields"`
	SortFields    []string `toml:"sort_fields"`
	ViewMode      string   `toml:"view_mode"`
	SortKey       string   `toml:"sort_key,omitempty"`
	SortDirection string   `toml:"sort_direction,omitempty"`
	Columns       []string `toml:"columns,omitempty"` // table view and list output
}

// FeatureConfig switches capabilities on or off
type FeatureConfig struct {
	Selection         bool `toml:"selection"`
	Search            bool `toml:"search"`
	Filter            bool `toml:"filter"`
	Sort              bool `toml:"sort"`
	Reorder           bool `toml:"reorder"`
	ViewModeSwitching bool `toml:"view_mode_switching"`
}

// FilterConfig declares one filter over an item field
type FilterConfig struct {
	ID     string `toml:"id"`
	Label  string `toml:"label,omitempty"`
	Field  string `toml:"field"`
	Op     string `toml:"op"`
	Values []any  `toml:"values,omitempty"`
}

// SourceConfig lists where items come from
type SourceConfig struct {
	Paths     []string `toml:"paths"`
	Watch     bool     `toml:"watch"`
	SaveOrder bool     `toml:"save_order"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MarkdownStyle string `toml:"markdown_style"`
	Mouse         bool   `toml:"mouse"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
	logger   *zap.Logger
}

// NewConfigService creates a config service reading the project-local file
// when present, otherwise the per-user file
func NewConfigService(logger *zap.Logger) ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &configService{
		filePath: DefaultPath(),
		logger:   logger,
	}
}

// DefaultPath returns the config file Load reads
func DefaultPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, herr := homedir.Dir()
		if herr != nil {
			return FileName
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "collectionview", "config.toml")
}

// Load loads the configuration from file, or the defaults when there is none
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cs.logger.Debug("no config file, using defaults", zap.String("path", cs.filePath))
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(expanded)

	cs.logger.Debug("config loaded",
		zap.String("path", expanded),
		zap.Int("filters", len(cfg.Filters)),
		zap.Int("sources", len(cfg.Source.Paths)),
	)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(expanded, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Collection: CollectionConfig{
			SearchFields: append([]string(nil), search.DefaultFields...),
			SortFields:   []string{"title", "subtitle"},
			ViewMode:     domain.ViewList.String(),
		},
		Features: FeatureConfig{
			Selection:         true,
			Search:            true,
			Filter:            true,
			Sort:              true,
			Reorder:           true,
			ViewModeSwitching: true,
		},
		UISettings: UISettings{
			MarkdownStyle: "dark",
			Mouse:         true,
		},
	}
}

// Validate checks the config for values the controller cannot use
func (c *Config) Validate() error {
	var errs []error

	if _, ok := domain.ParseViewMode(c.Collection.ViewMode); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown view_mode %q", ErrInvalidConfig, c.Collection.ViewMode))
	}
	switch c.Collection.SortDirection {
	case "", "asc", "desc":
	default:
		errs = append(errs, fmt.Errorf("%w: sort_direction must be asc or desc, got %q", ErrInvalidConfig, c.Collection.SortDirection))
	}

	seen := make(map[string]bool, len(c.Filters))
	for i, f := range c.Filters {
		if f.ID == "" {
			errs = append(errs, fmt.Errorf("%w: filter #%d has no id", ErrInvalidConfig, i+1))
			continue
		}
		if seen[f.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate filter id %q", ErrInvalidConfig, f.ID))
		}
		seen[f.ID] = true
		if _, err := filter.FromSpec(f.ID, f.Label, f.Field, f.Op, f.Values); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
		}
	}

	return errors.Join(errs...)
}

// BuildFilters turns the declared filters into filter definitions
func (c *Config) BuildFilters() ([]filter.Definition, error) {
	defs := make([]filter.Definition, 0, len(c.Filters))
	for _, f := range c.Filters {
		def, err := filter.FromSpec(f.ID, f.Label, f.Field, f.Op, f.Values)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", f.ID, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// ViewMode returns the configured initial view mode
func (c *Config) ViewMode() domain.ViewMode {
	mode, _ := domain.ParseViewMode(c.Collection.ViewMode)
	return mode
}

// SourcePaths returns the source paths with ~ expanded and relative paths
// resolved against the config file's directory
func (c *Config) SourcePaths() ([]string, error) {
	paths := make([]string, 0, len(c.Source.Paths))
	for _, p := range c.Source.Paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("failed to expand source path %q: %w", p, err)
		}
		if !filepath.IsAbs(expanded) && c.dir != "" {
			expanded = filepath.Join(c.dir, expanded)
		}
		paths = append(paths, expanded)
	}
	return paths, nil
}
