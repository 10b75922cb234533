// ABOUTME: Software volume for playback
// ABOUTME: Scales 24-bit samples by volume and mute with clipping
package player

import (
	"github.com/travesia/voicebox/pkg/audio"
)

// applyVolume applies volume and mute to samples
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := getVolumeMultiplier(volume, muted)

	result := make([]int32, len(samples))
	if multiplier == 1.0 {
		copy(result, samples)
		return result
	}
	for i, sample := range samples {
		result[i] = clip24(int64(float64(sample) * multiplier))
	}

	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}

func clip24(v int64) int32 {
	if v > audio.Max24Bit {
		return audio.Max24Bit
	}
	if v < audio.Min24Bit {
		return audio.Min24Bit
	}
	return int32(v)
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
