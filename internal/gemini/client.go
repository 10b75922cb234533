// ABOUTME: Gemini speech synthesis client
// ABOUTME: Builds generateContent requests and wraps returned PCM in WAV
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/travesia/voicebox/internal/version"
	"github.com/travesia/voicebox/pkg/audio"
	"github.com/travesia/voicebox/pkg/audio/decode"
	"github.com/travesia/voicebox/pkg/audio/wav"
)

const (
	DefaultModel   = "gemini-2.5-flash-preview-tts"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultVoice   = "Kore"
	DefaultTimeout = 90 * time.Second

	DefaultTemperature = 1.0
	MinTemperature     = 0.0
	MaxTemperature     = 2.0

	// TextPlaceholder marks where the script goes in a direction template
	TextPlaceholder = "{text}"

	// DefaultDirection keeps the instruction in English so the model does
	// not read it aloud with the Spanish script.
	DefaultDirection = `Please read the following text with a standard Neutral Latin American Spanish accent (Español Neutro). It is crucial to avoid Rioplatense (Argentine/Uruguayan) intonation or "sheísmo" (sh sound for ll/y). Speak clearly and warmly. The text is: "{text}"`

	// maxErrorBody caps how much of a failed response is read
	maxErrorBody = 64 << 10
)

// Request is one synthesis call
type Request struct {
	Text        string
	Voice       string  // prebuilt voice name; empty means DefaultVoice
	Temperature float64 // expressivity, 0.0 to 2.0
}

// Result is a synthesized clip
type Result struct {
	PCM    []byte // raw 16-bit little-endian samples
	WAV    []byte // PCM wrapped in a 44-byte header
	Format audio.Format
}

// Duration returns the playback length of the result
func (r *Result) Duration() time.Duration {
	return r.Format.Duration(len(r.PCM))
}

// Config holds client settings
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	Direction string        // prompt template containing TextPlaceholder
	Timeout   time.Duration // used when HTTPClient is nil
	HTTP      *http.Client
}

// Client calls the Gemini generateContent endpoint
type Client struct {
	apiKey    string
	model     string
	baseURL   string
	direction string
	http      *http.Client
}

// NewClient creates a client, filling unset fields with defaults
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Direction == "" {
		cfg.Direction = DefaultDirection
	}
	if cfg.HTTP == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		cfg.HTTP = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		direction: cfg.Direction,
		http:      cfg.HTTP,
	}
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// Prompt returns the text sent to the model for a script
func (c *Client) Prompt(text string) string {
	if !strings.Contains(c.direction, TextPlaceholder) {
		return c.direction + " " + text
	}
	return strings.ReplaceAll(c.direction, TextPlaceholder, text)
}

// Validate checks a request without contacting the vendor
func (c *Client) Validate(req Request) error {
	if c.apiKey == "" {
		return ErrMissingCredential
	}
	if strings.TrimSpace(req.Text) == "" {
		return ErrEmptyText
	}
	if math.IsNaN(req.Temperature) || req.Temperature < MinTemperature || req.Temperature > MaxTemperature {
		return fmt.Errorf("%w: %v not in [%.1f, %.1f]", ErrTemperatureRange, req.Temperature, MinTemperature, MaxTemperature)
	}
	return nil
}

// Synthesize requests speech for req.Text and returns it as a WAV clip.
// Nothing is retried; cancelling ctx aborts the HTTP call.
func (c *Client) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice
	}

	id := xid.New().String()
	log.Printf("Synthesis %s: model=%s voice=%s temperature=%.1f chars=%d",
		id, c.model, voice, req.Temperature, len([]rune(req.Text)))
	start := time.Now()

	body, err := json.Marshal(c.buildRequest(req.Text, voice, req.Temperature))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp)
		log.Printf("Synthesis %s failed: %v", id, apiErr)
		return nil, apiErr
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	data := out.audioData()
	if data == "" {
		if reason := out.reason(); reason != "" {
			return nil, fmt.Errorf("%w (%s)", ErrMissingPayload, reason)
		}
		return nil, ErrMissingPayload
	}

	pcm, err := decode.DecodePayload(data)
	if err != nil {
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, ErrMissingPayload
	}

	format := audio.SpeechFormat()
	container, err := wav.Encode(pcm, format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("wrap audio: %w", err)
	}

	result := &Result{PCM: pcm, WAV: container, Format: format}
	log.Printf("Synthesis %s complete: %d bytes, %v audio in %v",
		id, len(pcm), result.Duration(), time.Since(start).Round(time.Millisecond))
	return result, nil
}

func (c *Client) buildRequest(text, voice string, temperature float64) generateRequest {
	return generateRequest{
		Contents: []content{
			{Parts: []part{{Text: c.Prompt(text)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:        temperature,
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}
}

func parseAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error.Message != "" {
		apiErr.Code = er.Error.Status
		apiErr.Message = er.Error.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
