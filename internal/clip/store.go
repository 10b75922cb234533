// ABOUTME: Clip store that materializes clips as temporary WAV files
// ABOUTME: Hands out Handles that must be released exactly once
package clip

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// ErrReleased is returned when a released handle is used
var ErrReleased = errors.New("clip: handle already released")

// Store manages the temp directory backing published clips
type Store struct {
	dir string

	mu   sync.Mutex
	live map[*Handle]struct{}
}

// NewStore creates a store rooted at dir. An empty dir creates a private
// voicebox-clips-* directory under the system temp directory, so stores of
// concurrent processes never share one.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "voicebox-clips-")
		if err != nil {
			return nil, fmt.Errorf("failed to create clip directory: %w", err)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create clip directory: %w", err)
	}

	return &Store{
		dir:  dir,
		live: make(map[*Handle]struct{}),
	}, nil
}

// Dir returns the directory holding published clips
func (s *Store) Dir() string {
	return s.dir
}

// Publish writes the clip to a temp file and returns its owning handle
func (s *Store) Publish(c Clip) (*Handle, error) {
	path := filepath.Join(s.dir, c.ID+".wav")
	if err := os.WriteFile(path, c.Data, 0644); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write clip: %w", err)
	}

	h := &Handle{store: s, clip: c, path: path}

	s.mu.Lock()
	s.live[h] = struct{}{}
	s.mu.Unlock()

	log.Printf("Clip published: %s (%d bytes, %v)", path, len(c.Data), c.Duration())
	return h, nil
}

// Live returns the number of unreleased handles
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Cleanup releases every live handle and removes the directory
func (s *Store) Cleanup() error {
	s.mu.Lock()
	handles := make([]*Handle, 0, len(s.live))
	for h := range s.live {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := h.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := os.RemoveAll(s.dir); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Store) forget(h *Handle) {
	s.mu.Lock()
	delete(s.live, h)
	s.mu.Unlock()
}
