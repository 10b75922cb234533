// ABOUTME: Owning reference to a published clip
// ABOUTME: Provides path access, saving and exactly-once release
package clip

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Handle owns a published clip file until Release is called
type Handle struct {
	store *Store
	clip  Clip
	path  string

	once     sync.Once
	mu       sync.Mutex
	released bool
}

// Clip returns the clip the handle owns
func (h *Handle) Clip() Clip {
	return h.clip
}

// ID returns the clip id
func (h *Handle) ID() string {
	return h.clip.ID
}

// Path returns the temp file path, or "" once released
func (h *Handle) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return ""
	}
	return h.path
}

// Released reports whether Release has been called
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Release removes the temp file. Only the first call has an effect.
func (h *Handle) Release() error {
	var err error
	h.once.Do(func() {
		h.mu.Lock()
		h.released = true
		h.mu.Unlock()

		if rmErr := os.Remove(h.path); rmErr != nil && !os.IsNotExist(rmErr) {
			err = fmt.Errorf("failed to remove clip %s: %w", h.path, rmErr)
		}
		if h.store != nil {
			h.store.forget(h)
		}
		log.Printf("Clip released: %s", h.clip.ID)
	})
	return err
}

// Save copies the clip to dir under its download name and returns the path
func (h *Handle) Save(dir string) (string, error) {
	if h.Released() {
		return "", ErrReleased
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}

	dest := filepath.Join(dir, h.clip.FileName())
	return dest, h.SaveAs(dest)
}

// SaveAs copies the clip to an explicit path
func (h *Handle) SaveAs(dest string) error {
	if h.Released() {
		return ErrReleased
	}
	if err := os.WriteFile(dest, h.clip.Data, 0644); err != nil {
		os.Remove(dest)
		return fmt.Errorf("failed to save clip: %w", err)
	}
	log.Printf("Clip saved: %s", dest)
	return nil
}
