// ABOUTME: WAV export of decoded samples
// ABOUTME: Re-encodes samples as 16-bit PCM inside a canonical WAV container
package encode

import (
	"fmt"

	"github.com/travesia/voicebox/pkg/audio"
	"github.com/travesia/voicebox/pkg/audio/wav"
)

// WAV encodes samples as a 16-bit WAV container at format's rate and
// channel count. format.BitDepth is ignored.
func WAV(format audio.Format, samples []int32) ([]byte, error) {
	if format.Channels > 0 && len(samples)%format.Channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not fill %d channels", wav.ErrInvalidInput, len(samples), format.Channels)
	}

	enc, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: format.SampleRate, Channels: format.Channels, BitDepth: 16})
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	pcm, err := enc.Encode(samples)
	if err != nil {
		return nil, err
	}
	return wav.Encode(pcm, format.SampleRate, format.Channels)
}
