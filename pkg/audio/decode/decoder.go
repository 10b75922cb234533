// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for PCM decoders and the whole-file Clip type
package decode

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/travesia/voicebox/pkg/audio"
)

// Decoder decodes audio in various formats to PCM int32 samples
type Decoder interface {
	// Decode converts encoded audio data to PCM samples
	Decode(data []byte) ([]int32, error)

	// Close releases decoder resources
	Close() error
}

// Clip is a fully decoded audio file with interleaved samples in 24-bit range
type Clip struct {
	Format  audio.Format
	Samples []int32
}

// Duration returns the playback length of the clip
func (c *Clip) Duration() time.Duration {
	if c.Format.SampleRate <= 0 || c.Format.Channels <= 0 {
		return 0
	}
	frames := len(c.Samples) / c.Format.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.Format.SampleRate)
}

// DecodeFile decodes a .wav, .mp3 or .flac file by extension
func DecodeFile(path string) (*Clip, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".wav":
		return DecodeWAVFile(path)
	case ".mp3":
		return DecodeMP3File(path)
	case ".flac":
		return DecodeFLACFile(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .flac)", ext)
	}
}
