// ABOUTME: Session state for the voice studio
// ABOUTME: Explicit state value plus the events that change it
package session

import (
	"strings"

	"github.com/travesia/voicebox/internal/clip"
	"github.com/travesia/voicebox/internal/roster"
)

const (
	MinTemperature     = 0.0
	MaxTemperature     = 2.0
	TemperatureStep    = 0.1
	DefaultTemperature = 1.0
)

// State is everything the UI renders. It is a value; Reduce returns a new one.
type State struct {
	Character   roster.Character
	Script      string
	Temperature float64

	Loading bool
	Playing bool
	Clip    *clip.Handle
	Err     string

	// Generation identifies the newest synthesis request. Results stamped
	// with any other value are stale.
	Generation uint64
	Closed     bool
}

// New returns the initial state for a character and script
func New(character roster.Character, script string) State {
	return State{
		Character:   character,
		Script:      script,
		Temperature: DefaultTemperature,
	}
}

// CanGenerate reports whether the script has something to say
func (s State) CanGenerate() bool {
	return !s.Closed && strings.TrimSpace(s.Script) != ""
}

// HasClip reports whether a clip is ready to play
func (s State) HasClip() bool {
	return s.Clip != nil && !s.Clip.Released()
}

// Status returns a one-word summary for display and logs
func (s State) Status() string {
	switch {
	case s.Closed:
		return "closed"
	case s.Loading:
		return "generating"
	case s.Err != "":
		return "error"
	case s.Playing:
		return "playing"
	case s.HasClip():
		return "ready"
	default:
		return "idle"
	}
}

// Event is an input to Reduce
type Event interface {
	event()
}

// GenerateStarted begins a new synthesis request
type GenerateStarted struct{}

// GenerateSucceeded delivers the clip for request Generation
type GenerateSucceeded struct {
	Generation uint64
	Clip       *clip.Handle
}

// GenerateFailed reports the failure of request Generation
type GenerateFailed struct {
	Generation uint64
	Err        error
}

// PlaybackStarted, PlaybackPaused and PlaybackEnded report player changes
// for ClipID. An empty ClipID means the current clip.
type PlaybackStarted struct{ ClipID string }
type PlaybackPaused struct{ ClipID string }
type PlaybackEnded struct{ ClipID string }

// CharacterChanged selects another character
type CharacterChanged struct {
	Character roster.Character
}

// ScriptEdited replaces the script text
type ScriptEdited struct {
	Text string
}

// TemperatureChanged sets the expressivity
type TemperatureChanged struct {
	Value float64
}

// Teardown ends the session
type Teardown struct{}

func (GenerateStarted) event()    {}
func (GenerateSucceeded) event()  {}
func (GenerateFailed) event()     {}
func (PlaybackStarted) event()    {}
func (PlaybackPaused) event()     {}
func (PlaybackEnded) event()      {}
func (CharacterChanged) event()   {}
func (ScriptEdited) event()       {}
func (TemperatureChanged) event() {}
func (Teardown) event()           {}
