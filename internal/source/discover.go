package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// maxDepth bounds how far below a directory source Discover looks
const maxDepth = 5

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// Discover expands directory sources into the item files below them. Files
// are passed through as given; directories are walked in lexical order,
// skipping hidden entries and common build output.
func Discover(ctx context.Context, logger *zap.Logger, paths ...string) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			// missing files surface as load errors with the path in them
			add(root)
			continue
		}

		found, err := walk(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		logger.Debug("discovered sources", zap.String("root", root), zap.Int("files", len(found)))
		if len(found) == 0 {
			return nil, fmt.Errorf("%w: no item files in %s", ErrUnsupportedFormat, root)
		}
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}

func walk(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			return nil // unreadable entries are skipped
		}

		name := d.Name()
		if path != root && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			if skipDirs[name] || strings.Count(rel, string(filepath.Separator)) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if DetectFormat(path) != FormatUnknown {
			found = append(found, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
