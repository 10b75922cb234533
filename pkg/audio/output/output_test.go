// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backend selection, sample packing and the null output
package output

import (
	"testing"
	"time"
)

func TestPortAudioImplementsOutput(t *testing.T) {
	var _ Output = (*PortAudio)(nil)
	var _ Output = (*Oto)(nil)
	var _ Output = (*Null)(nil)
}

func TestNew(t *testing.T) {
	for _, name := range Backends {
		out, err := New(name)
		if err != nil {
			t.Errorf("New(%q) unexpected error: %v", name, err)
		}
		if out == nil {
			t.Errorf("New(%q) returned nil output", name)
		}
	}

	if _, err := New("alsa"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestToInt16LE(t *testing.T) {
	samples := []int32{0, 1 << 8, -1 << 8, 32767 << 8, -32768 << 8}
	expected := []byte{0x00, 0x00, 0x01, 0x00, 0xFF, 0xFF, 0xFF, 0x7F, 0x00, 0x80}

	got := toInt16LE(samples)
	if len(got) != len(expected) {
		t.Fatalf("expected %d bytes, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("byte %d: expected 0x%02X, got 0x%02X", i, expected[i], got[i])
		}
	}
}

func TestNullOutput(t *testing.T) {
	out := NewNull(false)

	if err := out.Write([]int32{1}); err == nil {
		t.Error("expected error writing before Open")
	}
	if err := out.Open(0, 1); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if err := out.Open(24000, 1); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := out.Write(make([]int32, 480)); err != nil {
		t.Errorf("Write failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNullOutputPaced(t *testing.T) {
	out := NewNull(true)
	if err := out.Open(1000, 1); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	start := time.Now()
	if err := out.Write(make([]int32, 50)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected paced write to take ~50ms, took %v", elapsed)
	}
}
