// ABOUTME: Tests for the roster file watcher
// ABOUTME: Covers reload on write and recovery from watcher errors
package roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	if err := os.WriteFile(path, []byte("characters:\n  - {id: a, name: A, voice: Kore}\n"), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Roster, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(r *Roster, err error) {
			if err == nil {
				reloaded <- r
			}
		})
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	content := "characters:\n  - {id: a, name: A, voice: Kore}\n  - {id: b, name: B, voice: Puck}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("rewrite yaml: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case r := <-reloaded:
			if r.Len() == 2 {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Watch returned %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatchSurvivesWatcherError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	if err := os.WriteFile(path, []byte("characters:\n  - {id: a, name: A, voice: Kore}\n"), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	reloaded := make(chan *Roster, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, path, events, errs, func(r *Roster, err error) {
			if err == nil {
				reloaded <- r
			}
		})
	}()

	errs <- errors.New("event queue overflow")
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}

	select {
	case r := <-reloaded:
		if r.Len() != 1 {
			t.Errorf("expected 1 character, got %d", r.Len())
		}
	case err := <-done:
		t.Fatalf("watch stopped after watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload after watcher error")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("expected nil on cancel, got %v", err)
	}
}
