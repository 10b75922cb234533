// ABOUTME: Async commands and their result messages
// ABOUTME: Synthesis, playback, saving and progress ticks
package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/travesia/voicebox/internal/clip"
	"github.com/travesia/voicebox/internal/gemini"
	"github.com/travesia/voicebox/internal/player"
	"github.com/travesia/voicebox/internal/roster"
	"github.com/travesia/voicebox/internal/session"
)

// RosterMsg delivers a reloaded roster
type RosterMsg struct {
	Roster *roster.Roster
	Err    error
}

type generatedMsg struct {
	generation uint64
	character  roster.Character
	result     *gemini.Result
	err        error
}

type playbackDoneMsg struct {
	clipID string
	err    error
}

type savedMsg struct {
	path string
	err  error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// generate starts a synthesis request, superseding any in flight
func (m Model) generate() (tea.Model, tea.Cmd) {
	if !m.state.CanGenerate() {
		m.notice = "El guion está vacío"
		return m, nil
	}

	m.cancelInFlight()
	m.notice = ""
	m.dispatch(session.GenerateStarted{})

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	gen := m.state.Generation
	character := m.state.Character
	req := gemini.Request{
		Text:        m.state.Script,
		Voice:       character.Voice,
		Temperature: m.state.Temperature,
	}
	synth := m.synth

	log.Printf("Generate #%d: %s (%s), temperature %.1f", gen, character.Name, character.Voice, req.Temperature)
	return m, func() tea.Msg {
		res, err := synth.Synthesize(ctx, req)
		return generatedMsg{generation: gen, character: character, result: res, err: err}
	}
}

func (m Model) applyGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	if msg.generation == m.state.Generation {
		m.cancelInFlight()
	}

	if msg.err != nil {
		if msg.generation == m.state.Generation {
			log.Printf("Generate #%d failed: %v", msg.generation, msg.err)
		}
		m.dispatch(session.GenerateFailed{Generation: msg.generation, Err: msg.err})
		return m, nil
	}

	// Stale results never touch the disk
	if msg.generation != m.state.Generation || !m.state.Loading {
		log.Printf("Generate #%d superseded, dropping result", msg.generation)
		return m, nil
	}

	c := clip.New(msg.character.ID, msg.character.Name, msg.result.Format, msg.result.WAV)
	h, err := m.store.Publish(c)
	if err != nil {
		m.dispatch(session.GenerateFailed{Generation: msg.generation, Err: err})
		return m, nil
	}

	m.dispatch(session.GenerateSucceeded{Generation: msg.generation, Clip: h})
	if m.state.Clip != h {
		return m, nil
	}

	if err := m.player.Load(h.ID(), c.Format, c.PCM()); err != nil {
		m.notice = fmt.Sprintf("No se pudo cargar el audio: %v", err)
	}
	return m, nil
}

// togglePlayback plays, pauses or resumes the current clip
func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	if !m.state.HasClip() {
		return m, nil
	}
	id := m.state.Clip.ID()

	switch m.player.State() {
	case player.StatePlaying:
		m.player.Pause()
		m.dispatch(session.PlaybackPaused{ClipID: id})
		return m, nil
	case player.StatePaused:
		m.player.Resume()
		m.dispatch(session.PlaybackStarted{ClipID: id})
		return m, tick()
	default:
		return m.startPlayback()
	}
}

// replay restarts the current clip from the beginning
func (m Model) replay() (tea.Model, tea.Cmd) {
	if !m.state.HasClip() {
		return m, nil
	}
	m.player.Rewind()

	switch m.player.State() {
	case player.StatePaused:
		m.player.Resume()
		m.dispatch(session.PlaybackStarted{ClipID: m.state.Clip.ID()})
		return m, tick()
	case player.StatePlaying:
		return m, nil
	default:
		return m.startPlayback()
	}
}

func (m Model) startPlayback() (tea.Model, tea.Cmd) {
	id := m.state.Clip.ID()
	m.dispatch(session.PlaybackStarted{ClipID: id})

	p := m.player
	play := func() tea.Msg {
		return playbackDoneMsg{clipID: id, err: p.Play(context.Background())}
	}
	return m, tea.Batch(play, tick())
}

func (m Model) applyPlaybackDone(msg playbackDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, player.ErrStopped), errors.Is(msg.err, player.ErrBusy):
		return m, nil
	case msg.err != nil:
		log.Printf("Playback failed: %v", msg.err)
		m.notice = fmt.Sprintf("Error de reproducción: %v", msg.err)
	}
	m.dispatch(session.PlaybackEnded{ClipID: msg.clipID})
	return m, nil
}

// save writes the current clip to the save directory
func (m Model) save() (tea.Model, tea.Cmd) {
	if !m.state.HasClip() {
		m.notice = "No hay audio para guardar"
		return m, nil
	}
	h := m.state.Clip
	dir := m.saveDir
	return m, func() tea.Msg {
		path, err := h.Save(dir)
		return savedMsg{path: path, err: err}
	}
}
