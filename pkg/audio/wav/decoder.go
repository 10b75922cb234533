// ABOUTME: WAV container parser
// ABOUTME: Reads canonical headers and locates PCM payloads in WAV files
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/travesia/voicebox/pkg/audio"
)

// Header holds the fields of a canonical 44-byte PCM WAV header
type Header struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Format converts the header to an audio.Format
func (h Header) Format() audio.Format {
	return audio.Format{
		Codec:      "pcm",
		SampleRate: int(h.SampleRate),
		Channels:   int(h.Channels),
		BitDepth:   int(h.BitsPerSample),
	}
}

// Duration returns the playback length of the data chunk
func (h Header) Duration() time.Duration {
	return h.Format().Duration(int(h.DataSize))
}

// ParseHeader reads the canonical layout written by Encode.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than a header", ErrInvalidInput, len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return Header{}, fmt.Errorf("%w: missing RIFF/WAVE markers", ErrInvalidInput)
	}
	if !bytes.Equal(data[12:16], []byte("fmt ")) || !bytes.Equal(data[36:40], []byte("data")) {
		return Header{}, fmt.Errorf("%w: not a canonical PCM header", ErrInvalidInput)
	}

	le := binary.LittleEndian
	if size := le.Uint32(data[16:20]); size != fmtChunkSize {
		return Header{}, fmt.Errorf("%w: fmt chunk size %d", ErrInvalidInput, size)
	}

	h := Header{
		RIFFSize:      le.Uint32(data[4:8]),
		AudioFormat:   le.Uint16(data[20:22]),
		Channels:      le.Uint16(data[22:24]),
		SampleRate:    le.Uint32(data[24:28]),
		ByteRate:      le.Uint32(data[28:32]),
		BlockAlign:    le.Uint16(data[32:34]),
		BitsPerSample: le.Uint16(data[34:36]),
		DataSize:      le.Uint32(data[40:44]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	if uint64(h.DataSize) > uint64(len(data)-HeaderSize) {
		return Header{}, fmt.Errorf("%w: data size %d exceeds buffer", ErrInvalidInput, h.DataSize)
	}
	return h, nil
}

// Decode locates the fmt and data chunks of a PCM WAV file and returns its
// format and payload. Unknown chunks (LIST, fact) are skipped. The payload
// aliases data.
func Decode(data []byte) (audio.Format, []byte, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return audio.Format{}, nil, fmt.Errorf("%w: missing RIFF/WAVE markers", ErrInvalidInput)
	}

	le := binary.LittleEndian
	var h Header
	haveFmt := false
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(le.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			// Tolerate a truncated trailing data chunk
			if id == "data" && haveFmt {
				size = len(data) - body
				size -= size % int(h.BlockAlign)
			} else {
				return audio.Format{}, nil, fmt.Errorf("%w: chunk %q overruns buffer", ErrInvalidInput, id)
			}
		}

		switch id {
		case "fmt ":
			if size < fmtChunkSize {
				return audio.Format{}, nil, fmt.Errorf("%w: fmt chunk size %d", ErrInvalidInput, size)
			}
			chunk := data[body : body+size]
			h.AudioFormat = le.Uint16(chunk[0:2])
			h.Channels = le.Uint16(chunk[2:4])
			h.SampleRate = le.Uint32(chunk[4:8])
			h.ByteRate = le.Uint32(chunk[8:12])
			h.BlockAlign = le.Uint16(chunk[12:14])
			h.BitsPerSample = le.Uint16(chunk[14:16])
			if err := h.validate(); err != nil {
				return audio.Format{}, nil, err
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return audio.Format{}, nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrInvalidInput)
			}
			return h.Format(), data[body : body+size], nil
		}

		// Chunks are word aligned
		pos = body + size + size%2
	}

	return audio.Format{}, nil, fmt.Errorf("%w: no data chunk", ErrInvalidInput)
}

func (h Header) validate() error {
	if h.AudioFormat != formatPCM {
		return fmt.Errorf("%w: unsupported audio format %d (PCM only)", ErrInvalidInput, h.AudioFormat)
	}
	if h.Channels == 0 || h.SampleRate == 0 {
		return fmt.Errorf("%w: zero channels or sample rate", ErrInvalidInput)
	}
	if h.BitsPerSample != 16 && h.BitsPerSample != 24 {
		return fmt.Errorf("%w: unsupported bit depth %d (supported: 16, 24)", ErrInvalidInput, h.BitsPerSample)
	}
	if int(h.BlockAlign) != int(h.Channels)*int(h.BitsPerSample)/8 {
		return fmt.Errorf("%w: block align %d does not match %d channels", ErrInvalidInput, h.BlockAlign, h.Channels)
	}
	return nil
}
