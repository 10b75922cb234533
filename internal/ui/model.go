// ABOUTME: Bubbletea model for the voice studio
// ABOUTME: Routes keys and async results through the session reducer
package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/travesia/voicebox/internal/clip"
	"github.com/travesia/voicebox/internal/gemini"
	"github.com/travesia/voicebox/internal/roster"
	"github.com/travesia/voicebox/internal/session"
	"github.com/travesia/voicebox/pkg/audio"
)

// Synthesizer turns a script into speech
type Synthesizer interface {
	Synthesize(ctx context.Context, req gemini.Request) (*gemini.Result, error)
}

// Playback controls the loaded clip
type Playback interface {
	Load(clipID string, format audio.Format, pcm []byte) error
	Unload()
	Play(ctx context.Context) error
	Pause()
	Resume()
	Rewind()
	State() string
	Progress() (played, total int)
	SetVolume(volume int)
	SetMuted(muted bool)
}

// Deps are the collaborators the model drives
type Deps struct {
	Roster      *roster.Roster
	Synth       Synthesizer
	Player      Playback
	Store       *clip.Store
	SaveDir     string
	Character   string // initial character id, "" for the first
	Script      string
	Temperature float64 // taken as given, 0 is a valid setting
	Volume      int     // 0-100, 0 is silent
}

// Model is the TUI state. Session fields live in state and only change
// through dispatch.
type Model struct {
	roster  *roster.Roster
	synth   Synthesizer
	player  Playback
	store   *clip.Store
	saveDir string

	state  session.State
	cancel context.CancelFunc // in-flight synthesis

	editor  textarea.Model
	editing bool
	notice  string

	volume int
	muted  bool

	width  int
	height int
}

// NewModel creates the model. An unknown initial character is an error.
func NewModel(d Deps) (Model, error) {
	character := d.Roster.First()
	if d.Character != "" {
		c, err := d.Roster.Lookup(d.Character)
		if err != nil {
			return Model{}, err
		}
		character = c
	}

	script := d.Script
	if script == "" {
		script = d.Roster.Script()
	}

	state := session.New(character, script)
	state = session.Reduce(state, session.TemperatureChanged{Value: d.Temperature}).State

	m := Model{
		roster:  d.Roster,
		synth:   d.Synth,
		player:  d.Player,
		store:   d.Store,
		saveDir: d.SaveDir,
		state:   state,
		editor:  newEditor(character, script),
		volume:  max(0, min(100, d.Volume)),
	}
	return m, nil
}

func newEditor(c roster.Character, script string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("¿Qué quieres que diga %s?", c.Name)
	ta.ShowLineNumbers = false
	ta.CharLimit = 5000
	ta.SetWidth(64)
	ta.SetHeight(6)
	ta.SetValue(script)
	ta.Blur()
	return ta
}

// State returns the current session state
func (m Model) State() session.State {
	return m.state
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditorKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 4; w > 20 {
			m.editor.SetWidth(min(w, 96))
		}

	case generatedMsg:
		return m.applyGenerated(msg)

	case playbackDoneMsg:
		return m.applyPlaybackDone(msg)

	case savedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("No se pudo guardar: %v", msg.err)
		} else {
			m.notice = "Guardado en " + msg.path
		}

	case tickMsg:
		if m.state.Playing {
			return m, tick()
		}

	case RosterMsg:
		m.applyRoster(msg)
	}

	return m, nil
}

// handleKey handles keyboard input outside the editor
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit
	case "left", "h":
		m.selectCharacter(m.roster.Prev(m.state.Character.ID))
	case "right", "l":
		m.selectCharacter(m.roster.Next(m.state.Character.ID))
	case "up", "k":
		m.dispatch(session.TemperatureChanged{Value: m.state.Temperature + session.TemperatureStep})
	case "down", "j":
		m.dispatch(session.TemperatureChanged{Value: m.state.Temperature - session.TemperatureStep})
	case "g", "enter":
		return m.generate()
	case " ", "p":
		return m.togglePlayback()
	case "r":
		return m.replay()
	case "s":
		return m.save()
	case "tab", "e":
		m.editing = true
		m.notice = ""
		return m, m.editor.Focus()
	case "+", "=":
		m.setVolume(m.volume + 10)
	case "-", "_":
		m.setVolume(m.volume - 10)
	case "m":
		m.muted = !m.muted
		m.player.SetMuted(m.muted)
	}

	return m, nil
}

// handleEditorKey feeds keys to the script editor until esc or tab
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.shutdown()
		return m, tea.Quit
	case "esc", "tab":
		m.editing = false
		m.editor.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != m.state.Script {
		m.dispatch(session.ScriptEdited{Text: v})
	}
	return m, cmd
}

// dispatch runs the reducer and performs the effects it asks for
func (m *Model) dispatch(ev session.Event) {
	t := session.Reduce(m.state, ev)
	if t.Stop {
		m.player.Unload()
	}
	if t.Release != nil {
		if err := t.Release.Release(); err != nil {
			log.Printf("Failed to release clip: %v", err)
		}
	}
	m.state = t.State
}

func (m *Model) selectCharacter(c roster.Character) {
	if c == m.state.Character {
		return
	}
	m.cancelInFlight()
	m.dispatch(session.CharacterChanged{Character: c})
	m.editor.Placeholder = fmt.Sprintf("¿Qué quieres que diga %s?", c.Name)
	m.notice = ""
	log.Printf("Character selected: %s (%s)", c.ID, c.Voice)
}

func (m *Model) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) setVolume(v int) {
	m.volume = max(0, min(100, v))
	m.player.SetVolume(m.volume)
}

// applyRoster swaps in a reloaded roster, keeping the selection when it
// still exists
func (m *Model) applyRoster(msg RosterMsg) {
	if msg.Err != nil {
		m.notice = fmt.Sprintf("Roster inválido: %v", msg.Err)
		return
	}
	m.roster = msg.Roster

	c, err := m.roster.Lookup(m.state.Character.ID)
	if err != nil {
		c = m.roster.First()
	}
	if c != m.state.Character {
		m.selectCharacter(c)
	}
	m.notice = fmt.Sprintf("Roster recargado: %d personajes", m.roster.Len())
}

// shutdown cancels work and releases the current clip
func (m *Model) shutdown() {
	m.cancelInFlight()
	m.dispatch(session.Teardown{})
}
