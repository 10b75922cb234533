// ABOUTME: Roster file watcher
// ABOUTME: Reloads a YAML roster when the file is written or replaced
package roster

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the roster at path on every write or create and passes the
// result to onChange. Invalid files are reported through onChange with a nil
// roster and the previous roster stays in use by the caller. Blocks until ctx
// is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Roster, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch dir %q: %w", dir, err)
	}

	return watchLoop(ctx, path, watcher.Events, watcher.Errors, onChange)
}

// watchLoop reloads on events for path. Watcher errors are logged and the
// loop keeps going; only ctx or closed channels end it.
func watchLoop(ctx context.Context, path string, events <-chan fsnotify.Event, errs <-chan error, onChange func(*Roster, error)) error {
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				r, err := Load(path)
				if err != nil {
					log.Printf("Roster reload failed: %v", err)
				} else {
					log.Printf("Roster reloaded: %d characters", r.Len())
				}
				onChange(r, err)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Printf("Roster watch error: %v", err)
		}
	}
}
