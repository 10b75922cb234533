// ABOUTME: Tests for audio types
// ABOUTME: Tests format arithmetic and sample conversion functions
package audio

import (
	"testing"
	"time"
)

func TestSpeechFormat(t *testing.T) {
	f := SpeechFormat()

	if f.SampleRate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", f.SampleRate)
	}
	if f.Channels != 1 {
		t.Errorf("expected mono, got %d channels", f.Channels)
	}
	if f.BitDepth != 16 {
		t.Errorf("expected 16-bit, got %d", f.BitDepth)
	}
	if f.ByteRate() != 48000 {
		t.Errorf("expected byte rate 48000, got %d", f.ByteRate())
	}
	if f.BlockAlign() != 2 {
		t.Errorf("expected block align 2, got %d", f.BlockAlign())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		bytes    int
		expected time.Duration
	}{
		{"one second mono", SpeechFormat(), 48000, time.Second},
		{"half second stereo", Format{SampleRate: 48000, Channels: 2, BitDepth: 16}, 96000, 500 * time.Millisecond},
		{"empty", SpeechFormat(), 0, 0},
		{"zero rate", Format{Channels: 1, BitDepth: 16}, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.Duration(tt.bytes); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if got := SpeechFormat().String(); got != "24000Hz mono 16-bit" {
		t.Errorf("unexpected format string %q", got)
	}
	f := Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
	if got := f.String(); got != "44100Hz stereo 16-bit" {
		t.Errorf("unexpected format string %q", got)
	}
}

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected int32
	}{
		{"zero", 0, 0},
		{"positive", 100, 100 << 8},
		{"negative", -100, -100 << 8},
		{"max", 32767, 32767 << 8},
		{"min", -32768, -32768 << 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleFrom24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    [3]byte
		expected int32
	}{
		{"zero", [3]byte{0, 0, 0}, 0},
		{"positive", [3]byte{0x56, 0x34, 0x12}, 0x123456},
		{"negative", [3]byte{0x00, 0xFF, 0xFF}, -256},
		{"max positive", [3]byte{0xFF, 0xFF, 0x7F}, Max24Bit},
		{"max negative", [3]byte{0x00, 0x00, 0x80}, Min24Bit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFrom24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestRoundTrip16Bit(t *testing.T) {
	samples := []int16{0, 100, -100, 1000, -1000, 32767, -32768}

	for _, original := range samples {
		sample32 := SampleFromInt16(original)
		result := SampleToInt16(sample32)
		if result != original {
			t.Errorf("round-trip failed: %d -> %d -> %d", original, sample32, result)
		}
	}
}

func TestRoundTrip24Bit(t *testing.T) {
	samples := []int32{0, 100000, -100000, Max24Bit, Min24Bit}

	for _, original := range samples {
		b := SampleTo24Bit(original)
		if result := SampleFrom24Bit(b); result != original {
			t.Errorf("round-trip failed: %d -> %v -> %d", original, b, result)
		}
	}
}
