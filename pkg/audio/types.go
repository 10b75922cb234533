// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM formats and sample conversions
package audio

import (
	"fmt"
	"time"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	// SpeechSampleRate is the rate of every clip the speech API returns.
	SpeechSampleRate = 24000
)

// Format describes a PCM audio stream
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// SpeechFormat returns the format of synthesized speech: 24kHz mono 16-bit PCM.
// The API does not carry this in-band.
func SpeechFormat() Format {
	return Format{
		Codec:      "pcm",
		SampleRate: SpeechSampleRate,
		Channels:   1,
		BitDepth:   16,
	}
}

// BytesPerSample returns the width of one sample in bytes
func (f Format) BytesPerSample() int {
	return f.BitDepth / 8
}

// BlockAlign returns the size of one frame (all channels) in bytes
func (f Format) BlockAlign() int {
	return f.Channels * f.BytesPerSample()
}

// ByteRate returns the number of payload bytes per second
func (f Format) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// Duration returns how long payloadBytes of audio play for
func (f Format) Duration(payloadBytes int) time.Duration {
	rate := f.ByteRate()
	if rate <= 0 || payloadBytes <= 0 {
		return 0
	}
	return time.Duration(payloadBytes) * time.Second / time.Duration(rate)
}

// String renders the format as "24000Hz mono 16-bit"
func (f Format) String() string {
	ch := "stereo"
	switch f.Channels {
	case 1:
		ch = "mono"
	case 2:
	default:
		ch = fmt.Sprintf("%dch", f.Channels)
	}
	return fmt.Sprintf("%dHz %s %d-bit", f.SampleRate, ch, f.BitDepth)
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
