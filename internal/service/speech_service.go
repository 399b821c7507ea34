package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/platform/elevenlabs"
)

// Synthesizer abstracts the speech backend so the service can be tested
// without a live API.
type Synthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
	ListVoices(ctx context.Context) ([]elevenlabs.Voice, error)
}

// SpeechService turns story text into audio, using the sender-to-voice
// mappings and caching synthesized clips in memory.
type SpeechService interface {
	// SynthesizeStory converts story text into MP3 audio spoken with the
	// voice resolved for the sender. Returns ErrSpeechUnavailable when no
	// speech backend is configured.
	SynthesizeStory(ctx context.Context, userID uuid.UUID, text, senderName string) ([]byte, error)

	// AvailableVoices lists the voices offered by the speech backend,
	// falling back to the built-in voice table when the backend is
	// unconfigured or unreachable.
	AvailableVoices(ctx context.Context) ([]elevenlabs.Voice, error)
}

// Audio clips for the same text and voice repeat often (the daily entry is
// replayed), so completed synthesis results are kept for a while.
const (
	audioCacheTTL     = 6 * time.Hour
	audioCacheCleanup = 30 * time.Minute
)

// speechServiceImpl implements the SpeechService interface
type speechServiceImpl struct {
	synthesizer  Synthesizer
	voiceService VoiceService
	cache        *gocache.Cache
	logger       *slog.Logger
}

// NewSpeechService creates a new SpeechService.
func NewSpeechService(synthesizer Synthesizer, voiceService VoiceService, logger *slog.Logger) (SpeechService, error) {
	if synthesizer == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "synthesizer cannot be nil"}
	}
	if voiceService == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "voiceService cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &speechServiceImpl{
		synthesizer:  synthesizer,
		voiceService: voiceService,
		cache:        gocache.New(audioCacheTTL, audioCacheCleanup),
		logger:       logger.With("component", "speech_service"),
	}, nil
}

// SynthesizeStory resolves the sender's voice, prepares the text, and
// synthesizes audio, serving repeated requests from cache.
func (s *speechServiceImpl) SynthesizeStory(
	ctx context.Context,
	userID uuid.UUID,
	text, senderName string,
) ([]byte, error) {
	if !s.synthesizer.Configured() {
		return nil, ErrSpeechUnavailable
	}

	voiceID, err := s.voiceService.ResolveVoice(ctx, userID, senderName)
	if err != nil {
		return nil, WrapError("synthesize_story", "failed to resolve voice", err)
	}

	prepared := elevenlabs.PrepareTextForSpeech(text)
	if prepared == "" {
		return nil, WrapError("synthesize_story", "no text to speak", elevenlabs.ErrEmptyText)
	}

	key := audioCacheKey(voiceID, prepared)
	if cached, found := s.cache.Get(key); found {
		if audio, ok := cached.([]byte); ok {
			s.logger.Debug("serving cached audio", "voice_id", voiceID, "bytes", len(audio))
			return audio, nil
		}
	}

	audio, err := s.synthesizer.Synthesize(ctx, prepared, voiceID)
	if err != nil {
		if errors.Is(err, elevenlabs.ErrNotConfigured) {
			return nil, ErrSpeechUnavailable
		}
		return nil, WrapError("synthesize_story", "speech synthesis failed", err)
	}

	s.cache.Set(key, audio, gocache.DefaultExpiration)

	s.logger.Info("story audio synthesized",
		"user_id", userID,
		"voice_id", voiceID,
		"bytes", len(audio))

	return audio, nil
}

// AvailableVoices lists backend voices, degrading to the built-in table when
// the backend cannot answer.
func (s *speechServiceImpl) AvailableVoices(ctx context.Context) ([]elevenlabs.Voice, error) {
	if s.synthesizer.Configured() {
		voices, err := s.synthesizer.ListVoices(ctx)
		if err == nil {
			return voices, nil
		}
		s.logger.Warn("voice listing failed, using built-in voices", "error", err)
	}

	voices := make([]elevenlabs.Voice, 0, len(elevenlabs.DefaultVoices))
	for name, id := range elevenlabs.DefaultVoices {
		voices = append(voices, elevenlabs.Voice{VoiceID: id, Name: name, Category: "premade"})
	}
	sort.Slice(voices, func(i, j int) bool { return voices[i].Name < voices[j].Name })
	return voices, nil
}

// audioCacheKey hashes the voice and prepared text so long stories do not
// become long map keys.
func audioCacheKey(voiceID, text string) string {
	sum := sha256.Sum256([]byte(voiceID + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
