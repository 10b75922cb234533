// ABOUTME: Tests for the session reducer
// ABOUTME: Covers generation epochs, stale results and clip release
package session

import (
	"errors"
	"testing"

	"github.com/travesia/voicebox/internal/clip"
	"github.com/travesia/voicebox/internal/roster"
	"github.com/travesia/voicebox/pkg/audio"
	"github.com/travesia/voicebox/pkg/audio/wav"
)

func newStore(t *testing.T) *clip.Store {
	t.Helper()
	store, err := clip.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func publish(t *testing.T, store *clip.Store) *clip.Handle {
	t.Helper()
	data, err := wav.EncodeMono(make([]byte, 480), audio.SpeechSampleRate)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	h, err := store.Publish(clip.New("kiko", "Kiko", audio.SpeechFormat(), data))
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	return h
}

// apply runs Reduce and performs the release like the UI does
func apply(t *testing.T, s State, ev Event) (State, Transition) {
	t.Helper()
	tr := Reduce(s, ev)
	if tr.Release != nil {
		if err := tr.Release.Release(); err != nil {
			t.Fatalf("release failed: %v", err)
		}
	}
	return tr.State, tr
}

func initial() State {
	return New(roster.Default().First(), roster.DefaultScript)
}

func TestGenerateLifecycle(t *testing.T) {
	store := newStore(t)
	s := initial()

	s, _ = apply(t, s, GenerateStarted{})
	if !s.Loading || s.Generation != 1 {
		t.Fatalf("expected loading generation 1, got loading=%v gen=%d", s.Loading, s.Generation)
	}

	h := publish(t, store)
	s, tr := apply(t, s, GenerateSucceeded{Generation: 1, Clip: h})
	if s.Loading {
		t.Error("expected loading cleared")
	}
	if s.Clip != h {
		t.Error("expected clip to be set")
	}
	if tr.Release != nil {
		t.Error("expected nothing released")
	}
	if s.Status() != "ready" {
		t.Errorf("expected status ready, got %s", s.Status())
	}

	s, _ = apply(t, s, PlaybackStarted{})
	if !s.Playing {
		t.Error("expected playing")
	}

	// A second generate releases the first clip and stops playback
	s, tr = apply(t, s, GenerateStarted{})
	if !tr.Stop {
		t.Error("expected Stop when regenerating")
	}
	if !h.Released() {
		t.Error("expected previous clip released")
	}
	if s.Clip != nil || s.Playing || !s.Loading {
		t.Errorf("unexpected state after regenerate: %+v", s)
	}
	if store.Live() != 0 {
		t.Errorf("expected 0 live clips, got %d", store.Live())
	}
}

func TestStaleResultReleased(t *testing.T) {
	store := newStore(t)
	s := initial()

	s, _ = apply(t, s, GenerateStarted{}) // gen 1
	s, _ = apply(t, s, GenerateStarted{}) // gen 2 supersedes

	late := publish(t, store)
	s, tr := apply(t, s, GenerateSucceeded{Generation: 1, Clip: late})
	if tr.Release != late {
		t.Error("expected stale clip returned for release")
	}
	if !late.Released() {
		t.Error("expected stale clip released")
	}
	if !s.Loading || s.Clip != nil {
		t.Errorf("stale result must not change state, got %+v", s)
	}

	current := publish(t, store)
	s, _ = apply(t, s, GenerateSucceeded{Generation: 2, Clip: current})
	if s.Clip != current || s.Loading {
		t.Errorf("expected current result applied, got %+v", s)
	}
	if store.Live() != 1 {
		t.Errorf("expected 1 live clip, got %d", store.Live())
	}
}

func TestStaleFailureIgnored(t *testing.T) {
	s := initial()
	s, _ = apply(t, s, GenerateStarted{})
	s, _ = apply(t, s, GenerateStarted{})

	s, _ = apply(t, s, GenerateFailed{Generation: 1, Err: errors.New("timeout")})
	if !s.Loading || s.Err != "" {
		t.Errorf("stale failure must be ignored, got %+v", s)
	}

	s, _ = apply(t, s, GenerateFailed{Generation: 2, Err: errors.New("HTTP 500")})
	if s.Loading {
		t.Error("expected loading cleared")
	}
	if s.Err != "HTTP 500" {
		t.Errorf("expected error message, got %q", s.Err)
	}
	if s.Status() != "error" {
		t.Errorf("expected status error, got %s", s.Status())
	}

	// Next generate clears the error
	s, _ = apply(t, s, GenerateStarted{})
	if s.Err != "" {
		t.Errorf("expected error cleared, got %q", s.Err)
	}
}

func TestCharacterChangeDropsInFlight(t *testing.T) {
	store := newStore(t)
	s := initial()

	s, _ = apply(t, s, GenerateStarted{})
	gen := s.Generation

	lila, _ := roster.Default().Lookup("lila")
	s, _ = apply(t, s, CharacterChanged{Character: lila})
	if s.Character.ID != "lila" {
		t.Errorf("expected lila, got %s", s.Character.ID)
	}
	if s.Loading {
		t.Error("expected loading reset")
	}

	late := publish(t, store)
	s, _ = apply(t, s, GenerateSucceeded{Generation: gen, Clip: late})
	if s.Clip != nil {
		t.Error("result for previous character must be dropped")
	}
	if !late.Released() {
		t.Error("expected late clip released")
	}
}

func TestCharacterChangeReleasesClip(t *testing.T) {
	store := newStore(t)
	s := initial()
	s, _ = apply(t, s, GenerateStarted{})
	h := publish(t, store)
	s, _ = apply(t, s, GenerateSucceeded{Generation: s.Generation, Clip: h})
	s, _ = apply(t, s, PlaybackStarted{ClipID: h.ID()})

	rox, _ := roster.Default().Lookup("rox")
	s, tr := apply(t, s, CharacterChanged{Character: rox})
	if !tr.Stop {
		t.Error("expected Stop on character change")
	}
	if !h.Released() || s.Clip != nil || s.Playing {
		t.Errorf("expected clip released and playback reset, got %+v", s)
	}
}

func TestGenerateRequiresScript(t *testing.T) {
	s := New(roster.Default().First(), "   \n")
	if s.CanGenerate() {
		t.Error("blank script should not be generatable")
	}
	s2, _ := apply(t, s, GenerateStarted{})
	if s2.Loading || s2.Generation != 0 {
		t.Errorf("expected no-op for blank script, got %+v", s2)
	}

	s2, _ = apply(t, s, ScriptEdited{Text: "Hola"})
	if !s2.CanGenerate() {
		t.Error("expected script to be generatable after edit")
	}
}

func TestPlaybackEvents(t *testing.T) {
	store := newStore(t)
	s := initial()

	// No clip: playback cannot start
	s, _ = apply(t, s, PlaybackStarted{})
	if s.Playing {
		t.Error("expected not playing without clip")
	}

	s, _ = apply(t, s, GenerateStarted{})
	h := publish(t, store)
	s, _ = apply(t, s, GenerateSucceeded{Generation: s.Generation, Clip: h})

	s, _ = apply(t, s, PlaybackStarted{ClipID: h.ID()})
	if !s.Playing {
		t.Fatal("expected playing")
	}
	s, _ = apply(t, s, PlaybackEnded{ClipID: "some-other-clip"})
	if !s.Playing {
		t.Error("end for another clip must be ignored")
	}
	s, _ = apply(t, s, PlaybackPaused{})
	if s.Playing {
		t.Error("expected paused")
	}
	s, _ = apply(t, s, PlaybackStarted{})
	s, _ = apply(t, s, PlaybackEnded{ClipID: h.ID()})
	if s.Playing {
		t.Error("expected playback ended")
	}
	if s.Clip != h {
		t.Error("clip must survive playback end for replay")
	}
}

func TestTemperatureChanged(t *testing.T) {
	tests := []struct {
		value    float64
		expected float64
	}{
		{1.5, 1.5},
		{1.26, 1.3},
		{-0.5, 0.0},
		{2.7, 2.0},
		{0.04, 0.0},
		{1.0 + 0.1 + 0.1, 1.2},
	}

	for _, tt := range tests {
		s, _ := apply(t, initial(), TemperatureChanged{Value: tt.value})
		if s.Temperature != tt.expected {
			t.Errorf("TemperatureChanged(%v): expected %v, got %v", tt.value, tt.expected, s.Temperature)
		}
	}
}

func TestTeardown(t *testing.T) {
	store := newStore(t)
	s := initial()
	s, _ = apply(t, s, GenerateStarted{})
	gen := s.Generation
	h := publish(t, store)
	s, _ = apply(t, s, GenerateSucceeded{Generation: gen, Clip: h})

	s, _ = apply(t, s, GenerateStarted{})
	s, _ = apply(t, s, Teardown{})
	if !s.Closed || s.Loading || s.Clip != nil {
		t.Errorf("unexpected state after teardown: %+v", s)
	}

	late := publish(t, store)
	s, _ = apply(t, s, GenerateSucceeded{Generation: s.Generation, Clip: late})
	if s.Clip != nil || !late.Released() {
		t.Error("results after teardown must be released")
	}
	if s.CanGenerate() {
		t.Error("closed session cannot generate")
	}
	if store.Live() != 0 {
		t.Errorf("expected no live clips, got %d", store.Live())
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := initial()
	before := s
	Reduce(s, GenerateStarted{})
	Reduce(s, TemperatureChanged{Value: 0.3})
	if s != before {
		t.Error("Reduce mutated its input")
	}
}
