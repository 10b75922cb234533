// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends and backend selection
package output

import (
	"fmt"
	"time"

	"github.com/travesia/voicebox/pkg/audio"
)

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs audio samples (blocks until written)
	Write(samples []int32) error

	// Close releases output resources
	Close() error
}

// Backends lists the names accepted by New
var Backends = []string{"oto", "portaudio", "null"}

// New creates the named output backend
func New(backend string) (Output, error) {
	switch backend {
	case "", "oto":
		return NewOto(), nil
	case "portaudio":
		return NewPortAudio(), nil
	case "null":
		return NewNull(true), nil
	default:
		return nil, fmt.Errorf("unknown output backend %q (supported: oto, portaudio, null)", backend)
	}
}

// toInt16LE converts int32 samples in 24-bit range to 16-bit little-endian bytes
func toInt16LE(samples []int32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := uint16(audio.SampleToInt16(s))
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}

// Null discards audio. When paced, Write sleeps for the duration of the
// samples so callers observe real-time playback.
type Null struct {
	paced      bool
	sampleRate int
	channels   int
	open       bool
}

// NewNull creates a null output
func NewNull(paced bool) *Null {
	return &Null{paced: paced}
}

// Open records the stream format
func (n *Null) Open(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid output format: %dHz %d channels", sampleRate, channels)
	}
	n.sampleRate = sampleRate
	n.channels = channels
	n.open = true
	return nil
}

// Write drops samples
func (n *Null) Write(samples []int32) error {
	if !n.open {
		return fmt.Errorf("output not initialized")
	}
	if n.paced {
		frames := len(samples) / n.channels
		time.Sleep(time.Duration(frames) * time.Second / time.Duration(n.sampleRate))
	}
	return nil
}

// Close marks the output closed
func (n *Null) Close() error {
	n.open = false
	return nil
}
