// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface with oto, PortAudio and null backends
// Package output provides audio playback interfaces.
//
// The default backend is oto, which needs no system libraries beyond the
// platform audio stack. PortAudio is available when built with
// -tags portaudio. The null backend discards audio at real-time pace and
// is useful on machines without a sound card.
//
// Example:
//
//	out, err := output.New("oto")
//	err = out.Open(24000, 1)
//	err = out.Write(samples)
package output
