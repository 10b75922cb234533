// ABOUTME: Tests for WAV header parsing
// ABOUTME: Tests canonical headers, chunk walking and malformed input
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestParseHeaderRoundTrip(t *testing.T) {
	pcm := make([]byte, 48000) // one second of 24kHz mono
	out, err := Encode(pcm, 24000, 1)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	h, err := ParseHeader(out)
	if err != nil {
		t.Fatalf("ParseHeader() unexpected error = %v", err)
	}

	if h.SampleRate != 24000 || h.Channels != 1 || h.BitsPerSample != 16 {
		t.Errorf("unexpected header %+v", h)
	}
	if h.DataSize != 48000 {
		t.Errorf("expected data size 48000, got %d", h.DataSize)
	}
	if h.Duration() != time.Second {
		t.Errorf("expected 1s duration, got %v", h.Duration())
	}
}

func TestParseHeaderErrors(t *testing.T) {
	valid, err := Encode([]byte{1, 0, 2, 0}, 24000, 1)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return f(b)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"short", valid[:20]},
		{"bad riff", mutate(func(b []byte) []byte { copy(b[0:4], "RIFX"); return b })},
		{"bad wave", mutate(func(b []byte) []byte { copy(b[8:12], "AVI "); return b })},
		{"not pcm", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint16(b[20:22], 3); return b })},
		{"data overrun", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint32(b[40:44], 1000); return b })},
		{"zero channels", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint16(b[22:24], 0); return b })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHeader(tt.data); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDecodeCanonical(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xFF, 0x7F, 0x00, 0x80, 0x10, 0x00}
	out, err := Encode(pcm, 16000, 2)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	format, payload, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode() unexpected error = %v", err)
	}

	if format.SampleRate != 16000 || format.Channels != 2 || format.BitDepth != 16 {
		t.Errorf("unexpected format %+v", format)
	}
	if !bytes.Equal(payload, pcm) {
		t.Errorf("expected payload %v, got %v", pcm, payload)
	}
}

func TestDecodeSkipsUnknownChunks(t *testing.T) {
	pcm := []byte{0x05, 0x00, 0x06, 0x00}
	canonical, err := Encode(pcm, 24000, 1)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	// Insert an odd-sized LIST chunk between fmt and data
	list := []byte{'L', 'I', 'S', 'T', 3, 0, 0, 0, 'a', 'b', 'c', 0}
	var buf bytes.Buffer
	buf.Write(canonical[:36])
	buf.Write(list)
	buf.Write(canonical[36:])

	format, payload, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() unexpected error = %v", err)
	}
	if format.SampleRate != 24000 {
		t.Errorf("expected 24000Hz, got %d", format.SampleRate)
	}
	if !bytes.Equal(payload, pcm) {
		t.Errorf("expected payload %v, got %v", pcm, payload)
	}
}

func TestDecodeErrors(t *testing.T) {
	noData, err := Encode(nil, 24000, 1)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("ID3\x03\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"no data chunk", noData[:36]},
		{"data before fmt", append([]byte("RIFF\x0c\x00\x00\x00WAVE"), []byte("data\x00\x00\x00\x00")...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(tt.data); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
