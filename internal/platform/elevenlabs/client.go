package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/seedling-labs/gratitude-api/internal/platform/logger"
)

// Pre-made ElevenLabs voices available without voice cloning.
var DefaultVoices = map[string]string{
	"rachel": "21m00Tcm4TlvDq8ikWAM", // Warm female
	"adam":   "pNInz6obpgDQGcFmaJgB", // Warm male
	"bella":  "EXAVITQu4vr4xnSDxMaL", // Soft female
	"antoni": "ErXwobaYiN019PkySvjV", // Friendly male
	"elli":   "MF3mGyEYCl7XYWbV9V6O", // Young female
	"josh":   "TxGEqnHWrfWFTfGW9XjX", // Deep male
}

// FallbackVoiceID is used when no sender voice mapping applies.
var FallbackVoiceID = DefaultVoices["bella"]

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	modelID        = "eleven_monolingual_v1"
	requestTimeout = 30 * time.Second
)

// Common client errors
var (
	// ErrNotConfigured indicates the API key is absent; speech synthesis
	// is unavailable.
	ErrNotConfigured = errors.New("elevenlabs API key not configured")

	// ErrEmptyText indicates there was nothing to synthesize.
	ErrEmptyText = errors.New("no text provided for speech generation")

	// ErrSynthesisFailed indicates the API rejected or failed the request.
	ErrSynthesisFailed = errors.New("speech synthesis failed")
)

// Voice describes one voice available to the account.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Client calls the ElevenLabs REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client. An empty API key is allowed; every call then
// returns ErrNotConfigured, which the speech service surfaces as "feature
// unavailable" rather than a server fault.
func NewClient(apiKey string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     log.With(slog.String("component", "elevenlabs_client")),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// synthesizeRequest is the POST body for text-to-speech calls.
type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize converts text to MP3 audio using the given voice. An empty
// voiceID selects the fallback voice.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if text == "" {
		return nil, ErrEmptyText
	}
	if voiceID == "" {
		voiceID = FallbackVoiceID
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:    text,
		ModelID: modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("synthesis request failed", "voice_id", voiceID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail := readErrorDetail(resp.Body)
		log.Error("synthesis request rejected",
			"voice_id", voiceID,
			"status", resp.StatusCode,
			"detail", detail)
		return nil, fmt.Errorf("%w: status %d: %s", ErrSynthesisFailed, resp.StatusCode, detail)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audio: %v", ErrSynthesisFailed, err)
	}

	log.Debug("synthesized speech",
		"voice_id", voiceID,
		"text_length", len(text),
		"audio_bytes", len(audio))
	return audio, nil
}

// ListVoices returns the voices available to the account.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build voices request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSynthesisFailed, resp.StatusCode)
	}

	var payload struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding voices: %v", ErrSynthesisFailed, err)
	}

	return payload.Voices, nil
}

// readErrorDetail pulls the message out of an API error body, tolerating
// non-JSON responses.
func readErrorDetail(r io.Reader) string {
	var payload struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "unknown error"
	}
	if payload.Detail.Message == "" {
		return "unknown error"
	}
	return payload.Detail.Message
}
