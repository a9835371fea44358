// Package source loads collection items from files and writes a committed
// order back. The collection controller never touches storage itself; the
// host calls into this package.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"collectionview/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned for paths whose extension no loader handles
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrDuplicateID is returned when two items share an id
	ErrDuplicateID = errors.New("duplicate item id")
)

// Format identifies how a source file is encoded
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// idNamespace seeds the name-based ids given to items that have none
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("collectionview/items"))

// DetectFormat picks the format from the file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatUnknown
	}
}

// Load reads the items of a single source
func Load(ctx context.Context, path string) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		items []domain.Item
		err   error
	)
	switch DetectFormat(path) {
	case FormatTOML:
		items, err = loadTOML(path)
	case FormatYAML:
		items, err = loadYAML(path)
	case FormatSQLite:
		items, err = loadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	assignIDs(items)
	if err := checkUnique(items); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Set is the combined item list of several sources, remembering where each
// item came from so a new order can be written back per source
type Set struct {
	Paths []string
	Items []domain.Item

	origin map[string]string
}

// LoadAll reads every source concurrently and concatenates the results in
// argument order. The first failure cancels the rest.
func LoadAll(ctx context.Context, paths ...string) (*Set, error) {
	results := make([][]domain.Item, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			items, err := Load(gctx, path)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &Set{
		Paths:  append([]string(nil), paths...),
		origin: make(map[string]string),
	}
	for i, items := range results {
		for _, item := range items {
			set.origin[item.Key] = paths[i]
		}
		set.Items = append(set.Items, items...)
	}
	if err := checkUnique(set.Items); err != nil {
		return nil, err
	}
	return set, nil
}

// Origin returns the source path an item was loaded from
func (s *Set) Origin(id string) string {
	return s.origin[id]
}

// SaveOrder writes items back to their sources, each source receiving its
// own items in the order they appear. Items with no known origin are skipped.
func (s *Set) SaveOrder(ctx context.Context, items []domain.Item) error {
	byPath := make(map[string][]domain.Item, len(s.Paths))
	for _, item := range items {
		if path, ok := s.origin[item.Key]; ok {
			byPath[path] = append(byPath[path], item)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for path, own := range byPath {
		g.Go(func() error {
			if err := SaveOrder(gctx, path, own); err != nil {
				return fmt.Errorf("save order to %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.Items = append([]domain.Item(nil), items...)
	return nil
}

// SaveOrder writes items back to path in the given order. Files are
// rewritten whole; SQLite sources only get their position column updated.
func SaveOrder(ctx context.Context, path string, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch DetectFormat(path) {
	case FormatTOML:
		return saveTOML(path, items)
	case FormatYAML:
		return saveYAML(path, items)
	case FormatSQLite:
		return savePositions(ctx, path, domain.IDs(items))
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// DerivedID is the id given to an item loaded without one
func DerivedID(item domain.Item) string {
	name := item.Title + "\x00" + item.Subtitle
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

func assignIDs(items []domain.Item) {
	for i := range items {
		if items[i].Key == "" {
			items[i].Key = DerivedID(items[i])
		}
	}
}

func checkUnique(items []domain.Item) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Key] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, item.Key)
		}
		seen[item.Key] = true
	}
	return nil
}
