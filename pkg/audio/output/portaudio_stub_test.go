//go:build !portaudio

// ABOUTME: Tests for the placeholder PortAudio backend
// ABOUTME: Checks that a default build reports the missing backend clearly
package output

import (
	"errors"
	"testing"
)

func TestPortAudioPlaceholder(t *testing.T) {
	out, err := New("portaudio")
	if err != nil {
		t.Fatalf("expected placeholder backend, got %v", err)
	}

	if err := out.Open(24000, 1); !errors.Is(err, ErrPortAudioUnavailable) {
		t.Errorf("expected ErrPortAudioUnavailable from Open, got %v", err)
	}
	if err := out.Write([]int32{0}); !errors.Is(err, ErrPortAudioUnavailable) {
		t.Errorf("expected ErrPortAudioUnavailable from Write, got %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("expected nil from Close, got %v", err)
	}
}
