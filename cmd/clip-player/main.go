// ABOUTME: Standalone player for saved clips
// ABOUTME: Decodes a WAV, MP3 or FLAC file, then plays or re-exports it
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/travesia/voicebox/internal/player"
	"github.com/travesia/voicebox/pkg/audio/decode"
	"github.com/travesia/voicebox/pkg/audio/encode"
	"github.com/travesia/voicebox/pkg/audio/output"
)

var (
	backend = flag.String("output", "oto", "Audio output backend: oto, portaudio or null")
	volume  = flag.Int("volume", 100, "Playback volume (0-100)")
	loop    = flag.Int("loop", 1, "Number of times to play the clip")
	info    = flag.Bool("info", false, "Print the clip format and exit")
	export  = flag.String("export", "", "Write the decoded clip as 16-bit WAV to this path and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.wav|file.mp3|file.flac>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	c, err := decode.DecodeFile(path)
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", path, err)
	}
	log.Printf("%s: %s, %v", filepath.Base(path), c.Format, c.Duration())

	if *info {
		return
	}

	if *export != "" {
		data, err := encode.WAV(c.Format, c.Samples)
		if err != nil {
			log.Fatalf("Failed to encode WAV: %v", err)
		}
		if err := os.WriteFile(*export, data, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", *export, err)
		}
		log.Printf("Exported %s (%d bytes)", *export, len(data))
		return
	}

	out, err := output.New(*backend)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}

	p := player.New(player.Config{
		Output: out,
		Volume: *volume,
		OnStateChange: func(st player.Status) {
			log.Printf("State: %s (%d/%d frames)", st.State, st.Played, st.Total)
		},
	})
	defer p.Close()

	if err := p.LoadSamples(filepath.Base(path), c.Format, c.Samples); err != nil {
		log.Fatalf("Failed to load clip: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for i := 0; i < *loop; i++ {
		if err := p.Play(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Printf("Interrupted")
				return
			}
			log.Printf("Playback failed: %v", err)
			return
		}
	}
}
