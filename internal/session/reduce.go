// ABOUTME: Pure session reducer
// ABOUTME: Applies events to State and reports which clip to release
package session

import (
	"math"

	"github.com/travesia/voicebox/internal/clip"
)

// Transition is the result of Reduce. The caller must stop playback when
// Stop is set and release Release if it is non-nil.
type Transition struct {
	State   State
	Release *clip.Handle
	Stop    bool
}

// Reduce applies ev to s. It performs no I/O.
func Reduce(s State, ev Event) Transition {
	switch ev := ev.(type) {
	case GenerateStarted:
		if !s.CanGenerate() {
			return Transition{State: s}
		}
		t := dropClip(s)
		t.State.Generation++
		t.State.Loading = true
		t.State.Err = ""
		return t

	case GenerateSucceeded:
		if s.Closed || ev.Generation != s.Generation || !s.Loading {
			// Late result for a superseded request: keep state, free the clip.
			return Transition{State: s, Release: ev.Clip}
		}
		t := Transition{State: s}
		if s.Clip != nil && s.Clip != ev.Clip {
			t.Release = s.Clip
		}
		t.State.Loading = false
		t.State.Clip = ev.Clip
		t.State.Err = ""
		return t

	case GenerateFailed:
		if s.Closed || ev.Generation != s.Generation || !s.Loading {
			return Transition{State: s}
		}
		s.Loading = false
		s.Err = errorText(ev.Err)
		return Transition{State: s}

	case PlaybackStarted:
		if s.HasClip() && matches(s, ev.ClipID) {
			s.Playing = true
		}
		return Transition{State: s}

	case PlaybackPaused:
		if matches(s, ev.ClipID) {
			s.Playing = false
		}
		return Transition{State: s}

	case PlaybackEnded:
		if matches(s, ev.ClipID) {
			s.Playing = false
		}
		return Transition{State: s}

	case CharacterChanged:
		if s.Closed {
			return Transition{State: s}
		}
		t := dropClip(s)
		t.State.Character = ev.Character
		t.State.Loading = false
		t.State.Err = ""
		// Any in-flight request was for the previous character.
		t.State.Generation++
		return t

	case ScriptEdited:
		s.Script = ev.Text
		return Transition{State: s}

	case TemperatureChanged:
		s.Temperature = ClampTemperature(ev.Value, s.Temperature)
		return Transition{State: s}

	case Teardown:
		t := dropClip(s)
		t.State.Loading = false
		t.State.Closed = true
		t.State.Generation++
		return t
	}

	return Transition{State: s}
}

// ClampTemperature limits v to [MinTemperature, MaxTemperature] rounded to
// one decimal, matching TemperatureStep. NaN keeps current.
func ClampTemperature(v, current float64) float64 {
	if math.IsNaN(v) {
		return current
	}
	v = math.Max(MinTemperature, math.Min(MaxTemperature, v))
	return math.Round(v*10) / 10
}

// dropClip detaches the current clip and stops playback
func dropClip(s State) Transition {
	t := Transition{State: s, Stop: s.Playing || s.Clip != nil}
	t.Release = s.Clip
	t.State.Clip = nil
	t.State.Playing = false
	return t
}

func matches(s State, clipID string) bool {
	if clipID == "" {
		return true
	}
	return s.Clip != nil && s.Clip.ID() == clipID
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
