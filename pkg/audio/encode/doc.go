// ABOUTME: Audio encoder package for re-encoding decoded samples
// ABOUTME: Provides the Encoder interface, a PCM encoder and WAV export
// Package encode turns int32 samples in 24-bit range back into bytes.
//
// The PCM encoder writes 16- or 24-bit little-endian samples. WAV wraps
// 16-bit PCM in the canonical container from package wav, which is how
// decoded MP3 and FLAC clips are exported.
//
// Example:
//
//	data, err := encode.WAV(clip.Format, clip.Samples)
package encode
