// ABOUTME: WAV container package for wrapping raw PCM audio
// ABOUTME: Provides Encode for 16-bit PCM and header parsing for playback
// Package wav wraps raw little-endian 16-bit PCM in a canonical RIFF/WAVE
// container so any media player can open it without extra metadata.
//
// The header is fully determined by the payload length, sample rate and
// channel count. The payload is copied verbatim after the 44-byte header.
//
// Example:
//
//	data, err := wav.Encode(pcm, 24000, 1)
//	if errors.Is(err, wav.ErrInvalidInput) {
//	    // odd payload length or bad sample rate
//	}
//
//	format, payload, err := wav.Decode(data)
package wav
