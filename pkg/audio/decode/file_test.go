// ABOUTME: Tests for whole-file decoding
// ABOUTME: Tests WAV decoding, extension dispatch and MP3/FLAC error paths
package decode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/travesia/voicebox/pkg/audio"
	"github.com/travesia/voicebox/pkg/audio/wav"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDecodeFile_WAV(t *testing.T) {
	pcm := make([]byte, 48000) // one second of speech-rate silence
	pcm[0], pcm[1] = 0xFF, 0x7F

	data, err := wav.Encode(pcm, audio.SpeechSampleRate, 1)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	path := writeTemp(t, "clip.WAV", data)

	clip, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	if clip.Format.SampleRate != 24000 || clip.Format.Channels != 1 {
		t.Errorf("unexpected format %+v", clip.Format)
	}
	if len(clip.Samples) != 24000 {
		t.Errorf("expected 24000 samples, got %d", len(clip.Samples))
	}
	if clip.Samples[0] != audio.SampleFromInt16(32767) {
		t.Errorf("expected first sample %d, got %d", audio.SampleFromInt16(32767), clip.Samples[0])
	}
	if clip.Duration() != time.Second {
		t.Errorf("expected 1s duration, got %v", clip.Duration())
	}
}

func TestDecodeFile_Unsupported(t *testing.T) {
	_, err := DecodeFile("voice.ogg")
	if err == nil {
		t.Fatal("expected error for unsupported extension, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported audio format: .ogg") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDecodeFile_Missing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"missing.wav", "missing.mp3", "missing.flac"} {
		if _, err := DecodeFile(filepath.Join(dir, name)); err == nil {
			t.Errorf("expected error for %s, got nil", name)
		}
	}
}

func TestDecodeFile_Corrupt(t *testing.T) {
	garbage := []byte("this is not audio at all")

	for _, name := range []string{"bad.wav", "bad.mp3", "bad.flac"} {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, name, garbage)
			if _, err := DecodeFile(path); err == nil {
				t.Errorf("expected error for corrupt %s, got nil", name)
			}
		})
	}
}

func TestScaleTo24(t *testing.T) {
	tests := []struct {
		name     string
		sample   int32
		bitDepth int
		expected int32
	}{
		{"16-bit", 100, 16, 100 << 8},
		{"24-bit", 100, 24, 100},
		{"32-bit", 100 << 8, 32, 100},
		{"8-bit", -2, 8, -2 << 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scaleTo24(tt.sample, tt.bitDepth); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestClipDuration_ZeroFormat(t *testing.T) {
	c := &Clip{Samples: make([]int32, 10)}
	if c.Duration() != 0 {
		t.Errorf("expected zero duration, got %v", c.Duration())
	}
}
