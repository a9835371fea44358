package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDelay coalesces bursts of writes, such as an editor's save
const DefaultWatchDelay = 150 * time.Millisecond

// Change reports that one or more watched sources were modified. Err is set
// when the watcher itself reported a problem; callers should reload anyway.
type Change struct {
	Paths []string
	Err   error
}

// Watch streams coalesced changes to paths until ctx is cancelled, then
// closes the channel. The parent directories are watched rather than the
// files so atomic replacements are seen. Slow consumers miss intermediate
// changes, never the latest one.
func Watch(ctx context.Context, logger *zap.Logger, delay time.Duration, paths ...string) (<-chan Change, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	changes := make(chan Change, 1)

	go func() {
		defer close(changes)
		defer watcher.Close()

		pending := make(map[string]struct{})
		var pendingErr error
		var timer *time.Timer
		var fire <-chan time.Time

		arm := func() {
			if fire == nil {
				timer = time.NewTimer(delay)
				fire = timer.C
			}
		}
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("source watcher error", zap.Error(err))
				pendingErr = err
				arm()

			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				name := filepath.Clean(evt.Name)
				if !targets[name] {
					continue
				}
				logger.Debug("source changed", zap.String("path", name), zap.Stringer("op", evt.Op))
				pending[name] = struct{}{}
				arm()

			case <-fire:
				fire, timer = nil, nil
				change := Change{Err: pendingErr}
				for p := range pending {
					change.Paths = append(change.Paths, p)
				}
				sort.Strings(change.Paths)
				pending = make(map[string]struct{})
				pendingErr = nil

				// replace an unread change with the newer one
				select {
				case <-changes:
				default:
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes, nil
}
