// ABOUTME: Entry point for the voicebox studio
// ABOUTME: Parses CLI flags and starts the TUI or a one-shot synthesis
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/travesia/voicebox/internal/clip"
	"github.com/travesia/voicebox/internal/config"
	"github.com/travesia/voicebox/internal/gemini"
	"github.com/travesia/voicebox/internal/player"
	"github.com/travesia/voicebox/internal/roster"
	"github.com/travesia/voicebox/internal/ui"
	"github.com/travesia/voicebox/internal/version"
	"github.com/travesia/voicebox/pkg/audio/output"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "voicebox: %v\n", err)
		os.Exit(2)
	}

	useTUI := !cfg.Headless()

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Headless mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	if err := run(cfg, useTUI); err != nil {
		log.Printf("Error: %v", err)
		if useTUI {
			fmt.Fprintf(os.Stderr, "voicebox: %v\n", err)
		}
		_ = f.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, useTUI bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := roster.Load(cfg.Roster)
	if err != nil {
		return err
	}
	log.Printf("Roster: %d characters", r.Len())

	synth := gemini.NewClient(cfg.Gemini())
	if cfg.APIKey == "" {
		log.Printf("Warning: %s is not set, synthesis will fail", config.EnvAPIKey)
	}

	store, err := clip.NewStore("")
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Cleanup(); err != nil {
			log.Printf("Clip cleanup failed: %v", err)
		}
	}()

	out, err := output.New(cfg.Output)
	if err != nil {
		return err
	}
	p := player.New(player.Config{
		Output: out,
		Volume: cfg.Volume,
		OnStateChange: func(st player.Status) {
			log.Printf("Playback %s: %s (%d/%d frames)", st.State, st.ClipID, st.Played, st.Total)
		},
	})
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
	}()

	if !useTUI {
		return runHeadless(ctx, cfg, r, synth, store, p)
	}
	return runTUI(ctx, cfg, r, synth, store, p)
}

func runTUI(ctx context.Context, cfg *config.Config, r *roster.Roster, synth ui.Synthesizer, store *clip.Store, p *player.Player) error {
	script, err := cfg.Script(r.Script())
	if err != nil {
		return err
	}

	prog, err := ui.Run(ui.Deps{
		Roster:      r,
		Synth:       synth,
		Player:      p,
		Store:       store,
		SaveDir:     cfg.SaveDir,
		Character:   cfg.Character,
		Script:      script,
		Temperature: cfg.Temperature,
		Volume:      cfg.Volume,
	})
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	// Quit the program on SIGINT/SIGTERM
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	if cfg.Watch && cfg.Roster != "" {
		go func() {
			err := roster.Watch(ctx, cfg.Roster, func(updated *roster.Roster, err error) {
				prog.Send(ui.RosterMsg{Roster: updated, Err: err})
			})
			if err != nil {
				log.Printf("Roster watch stopped: %v", err)
			}
		}()
	}

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	log.Printf("Studio closed")
	return nil
}

// runHeadless synthesizes one clip, saves it and optionally plays it
func runHeadless(ctx context.Context, cfg *config.Config, r *roster.Roster, synth ui.Synthesizer, store *clip.Store, p *player.Player) error {
	character := r.First()
	if cfg.Character != "" {
		c, err := r.Lookup(cfg.Character)
		if err != nil {
			return err
		}
		character = c
	}

	script, err := cfg.Script(r.Script())
	if err != nil {
		return err
	}

	log.Printf("Synthesizing as %s (%s), temperature %.1f", character.Name, character.Voice, cfg.Temperature)
	res, err := synth.Synthesize(ctx, gemini.Request{
		Text:        script,
		Voice:       character.Voice,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	c := clip.New(character.ID, character.Name, res.Format, res.WAV)
	h, err := store.Publish(c)
	if err != nil {
		return err
	}
	defer h.Release()

	switch {
	case cfg.Out != "":
		if err := h.SaveAs(cfg.Out); err != nil {
			return err
		}
	case !cfg.Play:
		if _, err := h.Save(cfg.SaveDir); err != nil {
			return err
		}
	}

	if !cfg.Play {
		return nil
	}
	if err := p.Load(h.ID(), c.Format, c.PCM()); err != nil {
		return err
	}
	log.Printf("Playing %v of audio", c.Duration())
	if err := p.Play(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}
