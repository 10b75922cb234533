// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample conversion functions shared by voicebox
// Package audio provides fundamental audio types and utilities for voicebox.
//
// This package defines core types used throughout the module:
//   - Format: Describes a PCM stream (sample rate, channels, bit depth)
//   - SpeechFormat: The fixed format returned by the Gemini speech API
//
// It also provides utilities for converting between sample representations:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//
// Example:
//
//	format := audio.SpeechFormat()
//	frameBytes := format.BlockAlign()
//
//	// Convert 16-bit sample to 24-bit range
//	sample24 := audio.SampleFromInt16(sample16)
package audio
