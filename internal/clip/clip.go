// ABOUTME: Synthesized clip value type
// ABOUTME: Holds a WAV container with its identity, speaker and format
package clip

import (
	"time"

	"github.com/google/uuid"

	"github.com/travesia/voicebox/pkg/audio"
	"github.com/travesia/voicebox/pkg/audio/wav"
)

// Clip is one synthesized WAV container
type Clip struct {
	ID          string
	CharacterID string
	Speaker     string // display name, used for the saved file name
	Format      audio.Format
	Data        []byte // complete WAV container
	CreatedAt   time.Time
}

// New wraps a WAV container produced for a character
func New(characterID, speaker string, format audio.Format, data []byte) Clip {
	return Clip{
		ID:          uuid.New().String(),
		CharacterID: characterID,
		Speaker:     speaker,
		Format:      format,
		Data:        data,
		CreatedAt:   time.Now(),
	}
}

// PCM returns the payload following the WAV header
func (c Clip) PCM() []byte {
	if len(c.Data) <= wav.HeaderSize {
		return nil
	}
	return c.Data[wav.HeaderSize:]
}

// Duration returns the playback length of the clip
func (c Clip) Duration() time.Duration {
	return c.Format.Duration(len(c.PCM()))
}

// FileName returns the download name, "<Speaker>-guion.wav"
func (c Clip) FileName() string {
	name := c.Speaker
	if name == "" {
		name = c.CharacterID
	}
	if name == "" {
		name = "clip"
	}
	return sanitize(name) + "-guion.wav"
}

func sanitize(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out[i] = '_'
		}
	}
	return string(out)
}
