// Package watch observes the configuration file and triggers report
// regeneration when it changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save
const DefaultDebounce = 500 * time.Millisecond

// File watches a single file and invokes onChange (debounced) whenever
// it is written, created, or renamed into place. Blocks until ctx is
// cancelled, then returns nil. A watcher failure returns an error.
//
// The parent directory is watched rather than the file itself, because
// most editors replace files on save and a direct watch would be lost
// with the old inode.
func File(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	base := filepath.Base(path)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var fired <-chan time.Time
		if timer != nil {
			fired = timer.C
		}

		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("file watcher closed unexpectedly")
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

		case <-fired:
			timer = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("file watcher closed unexpectedly")
			}
			return fmt.Errorf("file watcher error: %w", err)
		}
	}
}
