// ABOUTME: WAV container encoder
// ABOUTME: Prepends a 44-byte RIFF/WAVE header to 16-bit PCM payloads
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// HeaderSize is the size of the canonical PCM WAV header
	HeaderSize = 44

	bitsPerSample = 16
	fmtChunkSize  = 16
	formatPCM     = 1
)

// ErrInvalidInput reports a sample rate, channel count or payload length
// that cannot form a valid container.
var ErrInvalidInput = errors.New("wav: invalid input")

// Encode wraps 16-bit little-endian PCM in a WAV container.
// The returned buffer is freshly allocated; pcm is not retained.
func Encode(pcm []byte, sampleRate, channels int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, sampleRate)
	}
	if channels <= 0 || channels > math.MaxUint16 {
		return nil, fmt.Errorf("%w: channel count out of range: %d", ErrInvalidInput, channels)
	}

	blockAlign := channels * bitsPerSample / 8
	if blockAlign > math.MaxUint16 {
		return nil, fmt.Errorf("%w: block align overflows header: %d", ErrInvalidInput, blockAlign)
	}
	if len(pcm)%blockAlign != 0 {
		return nil, fmt.Errorf("%w: payload of %d bytes is not a multiple of %d-byte frames", ErrInvalidInput, len(pcm), blockAlign)
	}

	byteRate := uint64(sampleRate) * uint64(blockAlign)
	if byteRate > math.MaxUint32 {
		return nil, fmt.Errorf("%w: byte rate overflows header: %d", ErrInvalidInput, byteRate)
	}
	if uint64(len(pcm)) > math.MaxUint32-36 {
		return nil, fmt.Errorf("%w: payload too large: %d bytes", ErrInvalidInput, len(pcm))
	}

	out := make([]byte, HeaderSize+len(pcm))
	le := binary.LittleEndian

	// RIFF header
	copy(out[0:4], "RIFF")
	le.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")

	// fmt sub-chunk
	copy(out[12:16], "fmt ")
	le.PutUint32(out[16:20], fmtChunkSize)
	le.PutUint16(out[20:22], formatPCM)
	le.PutUint16(out[22:24], uint16(channels))
	le.PutUint32(out[24:28], uint32(sampleRate))
	le.PutUint32(out[28:32], uint32(byteRate))
	le.PutUint16(out[32:34], uint16(blockAlign))
	le.PutUint16(out[34:36], bitsPerSample)

	// data sub-chunk
	copy(out[36:40], "data")
	le.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[HeaderSize:], pcm)

	return out, nil
}

// EncodeMono wraps single-channel 16-bit PCM
func EncodeMono(pcm []byte, sampleRate int) ([]byte, error) {
	return Encode(pcm, sampleRate, 1)
}
