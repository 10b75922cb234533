// ABOUTME: Command-line and environment configuration
// ABOUTME: Merges flags with variables from the process and a .env file
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/travesia/voicebox/internal/gemini"
	"github.com/travesia/voicebox/internal/session"
)

// Environment variables read by Load
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvAPIKeyLegacy = "API_KEY"
	EnvModel        = "GEMINI_MODEL"
	EnvBaseURL      = "GEMINI_BASE_URL"
	EnvSaveDir      = "VOICEBOX_SAVE_DIR"
	EnvDirection    = "VOICEBOX_DIRECTION"
)

// Config holds everything main needs to start
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	Direction string
	Timeout   time.Duration

	Character   string
	Text        string
	TextFile    string
	Temperature float64

	Out     string
	SaveDir string
	Play    bool
	NoTUI   bool
	Roster  string
	Watch   bool
	Output  string
	Volume  int
	LogFile string
	EnvFile string
}

// Load parses args (without the program name) and fills unset values from
// the environment. A missing .env file is not an error.
func Load(name string, args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.Character, "character", "", "Character id to voice (default: first in roster)")
	flags.StringVar(&cfg.Text, "text", "", "Script text (overrides the default script)")
	flags.StringVar(&cfg.TextFile, "text-file", "", "Read the script from a file")
	flags.Float64Var(&cfg.Temperature, "temperature", session.DefaultTemperature, "Expressivity from 0.0 to 2.0")
	flags.StringVar(&cfg.Out, "out", "", "Headless mode: write the clip to this path")
	flags.BoolVar(&cfg.Play, "play", false, "Headless mode: play the clip after synthesis")
	flags.BoolVar(&cfg.NoTUI, "no-tui", false, "Disable TUI, synthesize once and exit")
	flags.StringVar(&cfg.Roster, "roster", "", "YAML roster file (default: built-in characters)")
	flags.BoolVar(&cfg.Watch, "watch-roster", false, "Reload the roster file when it changes")
	flags.StringVar(&cfg.Model, "model", "", "Speech model (env "+EnvModel+")")
	flags.StringVar(&cfg.BaseURL, "base-url", "", "API base URL (env "+EnvBaseURL+")")
	flags.StringVar(&cfg.LogFile, "log-file", "voicebox.log", "Log file path")
	flags.StringVar(&cfg.SaveDir, "save-dir", "", "Directory for saved clips (env "+EnvSaveDir+")")
	flags.DurationVar(&cfg.Timeout, "timeout", gemini.DefaultTimeout, "Synthesis request timeout")
	flags.StringVar(&cfg.Output, "output", "oto", "Audio output backend: oto, portaudio or null")
	flags.IntVar(&cfg.Volume, "volume", 100, "Playback volume (0-100)")
	flags.StringVar(&cfg.EnvFile, "env-file", ".env", "Environment file to load")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile reads KEY=value pairs without overriding variables already set
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIKey = os.Getenv(EnvAPIKey)
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKeyLegacy)
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.SaveDir == "" {
		c.SaveDir = os.Getenv(EnvSaveDir)
	}
	if c.Direction == "" {
		c.Direction = os.Getenv(EnvDirection)
	}
}

func (c *Config) validate() error {
	if c.Temperature < session.MinTemperature || c.Temperature > session.MaxTemperature {
		return fmt.Errorf("temperature %.2f out of range [%.1f, %.1f]",
			c.Temperature, session.MinTemperature, session.MaxTemperature)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("volume %d out of range [0, 100]", c.Volume)
	}
	if c.Text != "" && c.TextFile != "" {
		return fmt.Errorf("use either -text or -text-file, not both")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Headless reports whether to skip the TUI
func (c *Config) Headless() bool {
	return c.NoTUI || c.Out != ""
}

// Script returns the script from -text or -text-file, or fallback
func (c *Config) Script(fallback string) (string, error) {
	if c.Text != "" {
		return c.Text, nil
	}
	if c.TextFile != "" {
		data, err := os.ReadFile(c.TextFile)
		if err != nil {
			return "", fmt.Errorf("failed to read script: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return fallback, nil
}

// Gemini returns the client settings
func (c *Config) Gemini() gemini.Config {
	return gemini.Config{
		APIKey:    c.APIKey,
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		Direction: c.Direction,
		Timeout:   c.Timeout,
	}
}
