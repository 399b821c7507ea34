package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedling-labs/gratitude-api/internal/platform/elevenlabs"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// mockSpeechService implements service.SpeechService for handler tests.
type mockSpeechService struct {
	audio  []byte
	err    error
	voices []elevenlabs.Voice
}

func (m *mockSpeechService) SynthesizeStory(_ context.Context, _ uuid.UUID, _, _ string) ([]byte, error) {
	return m.audio, m.err
}

func (m *mockSpeechService) AvailableVoices(_ context.Context) ([]elevenlabs.Voice, error) {
	return m.voices, nil
}

func TestSynthesizeEndpoint(t *testing.T) {
	handler := NewSpeechHandler(&mockSpeechService{audio: []byte("mp3 data")})

	body, err := json.Marshal(SynthesizeSpeechRequest{Text: "a story to hear", SenderName: "Mom"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Synthesize(recorder, authedRequest("POST", "/api/speech", body, uuid.New()))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "audio/mpeg", recorder.Header().Get("Content-Type"))
	assert.Equal(t, []byte("mp3 data"), recorder.Body.Bytes())
}

func TestSynthesizeEndpoint_Unavailable(t *testing.T) {
	handler := NewSpeechHandler(&mockSpeechService{err: service.ErrSpeechUnavailable})

	body, err := json.Marshal(SynthesizeSpeechRequest{Text: "a story"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Synthesize(recorder, authedRequest("POST", "/api/speech", body, uuid.New()))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestSynthesizeEndpoint_MissingText(t *testing.T) {
	handler := NewSpeechHandler(&mockSpeechService{})

	body, err := json.Marshal(SynthesizeSpeechRequest{SenderName: "Mom"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Synthesize(recorder, authedRequest("POST", "/api/speech", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListSpeechVoicesEndpoint(t *testing.T) {
	handler := NewSpeechHandler(&mockSpeechService{
		voices: []elevenlabs.Voice{{VoiceID: "v1", Name: "bella", Category: "premade"}},
	})

	recorder := httptest.NewRecorder()
	handler.ListVoices(recorder, authedRequest("GET", "/api/speech/voices", nil, uuid.New()))

	require.Equal(t, http.StatusOK, recorder.Code)

	var voices []elevenlabs.Voice
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&voices))
	require.Len(t, voices, 1)
	assert.Equal(t, "bella", voices[0].Name)
}
