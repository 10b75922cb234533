// ABOUTME: Playback controller for a single clip
// ABOUTME: Feeds frames to an output with pause, resume, rewind and stop
package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/travesia/voicebox/pkg/audio"
	"github.com/travesia/voicebox/pkg/audio/decode"
	"github.com/travesia/voicebox/pkg/audio/output"
)

const (
	StateIdle    = "idle"
	StatePlaying = "playing"
	StatePaused  = "paused"

	// DefaultFrame is how much audio each output write carries
	DefaultFrame = 20 * time.Millisecond
)

var (
	// ErrNoClip is returned by Play before a clip is loaded
	ErrNoClip = errors.New("player: no clip loaded")

	// ErrBusy is returned when Play is called while already playing
	ErrBusy = errors.New("player: already playing")

	// ErrStopped is returned by Play when Stop or Load interrupts it
	ErrStopped = errors.New("player: stopped")
)

// Config holds player settings
type Config struct {
	Output output.Output

	// Frame is the duration of each output write (default 20ms)
	Frame time.Duration

	// Volume is the initial volume (0-100). 0 is silent.
	Volume int

	// OnStateChange is called outside the lock whenever the state changes
	OnStateChange func(Status)
}

// Status is a snapshot of the player
type Status struct {
	State  string // "idle", "playing", "paused"
	ClipID string
	Played int // frames written
	Total  int // frames in the clip
	Volume int
	Muted  bool
}

// Player plays one loaded clip at a time
type Player struct {
	out     output.Output
	frame   time.Duration
	onState func(Status)

	mu      sync.Mutex
	cond    *sync.Cond
	clipID  string
	format  audio.Format
	samples []int32
	pos     int // interleaved sample index
	state   string
	run     uint64 // bumped by Play, Stop and Load
	running bool
	volume  int
	muted   bool

	opened     bool
	openedRate int
	openedCh   int
}

// New creates a player. A nil output discards audio in real time.
func New(cfg Config) *Player {
	if cfg.Output == nil {
		cfg.Output = output.NewNull(true)
	}
	if cfg.Frame <= 0 {
		cfg.Frame = DefaultFrame
	}

	p := &Player{
		out:     cfg.Output,
		frame:   cfg.Frame,
		onState: cfg.OnStateChange,
		state:   StateIdle,
		volume:  clampVolume(cfg.Volume),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Load replaces the current clip with 16-bit PCM. Playback of the previous
// clip stops.
func (p *Player) Load(clipID string, format audio.Format, pcm []byte) error {
	decoder, err := decode.NewPCM(format)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	defer decoder.Close()

	samples, err := decoder.Decode(pcm)
	if err != nil {
		return fmt.Errorf("failed to decode clip: %w", err)
	}

	return p.LoadSamples(clipID, format, samples)
}

// LoadSamples replaces the current clip with decoded samples
func (p *Player) LoadSamples(clipID string, format audio.Format, samples []int32) error {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return fmt.Errorf("invalid clip format: %s", format)
	}

	p.mu.Lock()
	p.run++
	p.clipID = clipID
	p.format = format
	p.samples = samples
	p.pos = 0
	changed := p.setStateLocked(StateIdle)
	p.cond.Broadcast()
	st := p.statusLocked()
	p.mu.Unlock()

	log.Printf("Clip loaded: %s (%s, %d frames)", clipID, format, st.Total)
	p.notify(changed, st)
	return nil
}

// Unload drops the current clip
func (p *Player) Unload() {
	p.mu.Lock()
	p.run++
	p.clipID = ""
	p.samples = nil
	p.pos = 0
	changed := p.setStateLocked(StateIdle)
	p.cond.Broadcast()
	st := p.statusLocked()
	p.mu.Unlock()

	p.notify(changed, st)
}

// Play writes the loaded clip to the output until it ends, Stop or Load is
// called, or ctx is cancelled. A clip that already finished starts over.
// Returns nil when the clip plays to the end.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	if p.samples == nil {
		p.mu.Unlock()
		return ErrNoClip
	}
	if p.running {
		p.mu.Unlock()
		return ErrBusy
	}
	if err := p.openLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.pos >= len(p.samples) {
		p.pos = 0
	}
	p.run++
	run := p.run
	p.running = true
	changed := p.setStateLocked(StatePlaying)
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(changed, st)

	stopWake := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer stopWake()

	err := p.loop(ctx, run)

	p.mu.Lock()
	p.running = false
	changed = false
	if p.run == run {
		changed = p.setStateLocked(StateIdle)
	}
	st = p.statusLocked()
	p.mu.Unlock()
	p.notify(changed, st)

	return err
}

func (p *Player) loop(ctx context.Context, run uint64) error {
	for {
		p.mu.Lock()
		for p.state == StatePaused && p.run == run && ctx.Err() == nil {
			p.cond.Wait()
		}
		if p.run != run {
			p.mu.Unlock()
			return ErrStopped
		}
		if err := ctx.Err(); err != nil {
			p.mu.Unlock()
			return err
		}
		if p.pos >= len(p.samples) {
			p.mu.Unlock()
			return nil
		}

		end := p.pos + p.frameSamplesLocked()
		if end > len(p.samples) {
			end = len(p.samples)
		}
		chunk := applyVolume(p.samples[p.pos:end], p.volume, p.muted)
		p.pos = end
		p.mu.Unlock()

		if err := p.out.Write(chunk); err != nil {
			return fmt.Errorf("output write failed: %w", err)
		}
	}
}

// Pause holds playback at the current position
func (p *Player) Pause() {
	p.mu.Lock()
	changed := false
	if p.state == StatePlaying {
		changed = p.setStateLocked(StatePaused)
	}
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(changed, st)
}

// Resume continues a paused clip
func (p *Player) Resume() {
	p.mu.Lock()
	changed := false
	if p.state == StatePaused {
		changed = p.setStateLocked(StatePlaying)
		p.cond.Broadcast()
	}
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(changed, st)
}

// Rewind moves the position back to the start without changing state
func (p *Player) Rewind() {
	p.mu.Lock()
	p.pos = 0
	p.mu.Unlock()
}

// Stop ends playback and rewinds
func (p *Player) Stop() {
	p.mu.Lock()
	p.run++
	p.pos = 0
	changed := p.setStateLocked(StateIdle)
	p.cond.Broadcast()
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(changed, st)
}

// State returns "idle", "playing" or "paused"
func (p *Player) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Status returns a snapshot of the player
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Progress returns frames played and total frames of the loaded clip
func (p *Player) Progress() (played, total int) {
	st := p.Status()
	return st.Played, st.Total
}

// Elapsed returns the playback position as a duration
func (p *Player) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.format.SampleRate <= 0 || p.format.Channels <= 0 {
		return 0
	}
	frames := p.pos / p.format.Channels
	return time.Duration(frames) * time.Second / time.Duration(p.format.SampleRate)
}

// SetVolume sets the volume (0-100)
func (p *Player) SetVolume(volume int) {
	p.mu.Lock()
	p.volume = clampVolume(volume)
	p.mu.Unlock()
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
	log.Printf("Muted: %v", muted)
}

// Close stops playback and releases the output
func (p *Player) Close() error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return nil
	}
	p.opened = false
	return p.out.Close()
}

func (p *Player) openLocked() error {
	if p.opened && p.openedRate == p.format.SampleRate && p.openedCh == p.format.Channels {
		return nil
	}
	if p.opened {
		p.out.Close()
		p.opened = false
	}
	if err := p.out.Open(p.format.SampleRate, p.format.Channels); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	p.opened = true
	p.openedRate = p.format.SampleRate
	p.openedCh = p.format.Channels
	return nil
}

func (p *Player) frameSamplesLocked() int {
	n := int(int64(p.format.SampleRate) * int64(p.frame) / int64(time.Second))
	if n < 1 {
		n = 1
	}
	return n * p.format.Channels
}

func (p *Player) setStateLocked(state string) bool {
	if p.state == state {
		return false
	}
	p.state = state
	return true
}

func (p *Player) statusLocked() Status {
	st := Status{
		State:  p.state,
		ClipID: p.clipID,
		Volume: p.volume,
		Muted:  p.muted,
	}
	if p.format.Channels > 0 {
		st.Played = p.pos / p.format.Channels
		st.Total = len(p.samples) / p.format.Channels
	}
	return st
}

func (p *Player) notify(changed bool, st Status) {
	if changed && p.onState != nil {
		p.onState(st)
	}
}
