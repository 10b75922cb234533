//go:build !portaudio

// ABOUTME: Placeholder PortAudio backend for default builds
// ABOUTME: Every call reports that the binary was built without -tags portaudio
package output

import (
	"errors"
)

// ErrPortAudioUnavailable is returned by the placeholder backend
var ErrPortAudioUnavailable = errors.New("output: portaudio backend not compiled in (rebuild with -tags portaudio, or use -output oto)")

// PortAudio is the placeholder used when the portaudio tag is off
type PortAudio struct{}

// NewPortAudio returns the placeholder backend
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open always fails so the caller can pick another backend
func (p *PortAudio) Open(sampleRate, channels int) error {
	return ErrPortAudioUnavailable
}

// Write always fails; nothing was opened
func (p *PortAudio) Write(samples []int32) error {
	return ErrPortAudioUnavailable
}

// Close is a no-op; the placeholder holds no device
func (p *PortAudio) Close() error {
	return nil
}
