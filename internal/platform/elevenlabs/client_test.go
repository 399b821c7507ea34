package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeRequiresConfiguration(t *testing.T) {
	c := NewClient("", nil)

	assert.False(t, c.Configured())

	_, err := c.Synthesize(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.ListVoices(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	c := NewClient("key", nil)

	_, err := c.Synthesize(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestSynthesize(t *testing.T) {
	audio := []byte("mp3-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/"+FallbackVoiceID, r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		var req synthesizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello there", req.Text)
		assert.Equal(t, modelID, req.ModelID)
		assert.InDelta(t, 0.5, req.VoiceSettings.Stability, 0.001)
		assert.InDelta(t, 0.75, req.VoiceSettings.SimilarityBoost, 0.001)

		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	c := NewClient("key", nil)
	c.baseURL = srv.URL

	// Empty voice ID falls back to the default voice.
	got, err := c.Synthesize(context.Background(), "hello there", "")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", nil)
	c.baseURL = srv.URL

	_, err := c.Synthesize(context.Background(), "hello", "voice-1")
	require.ErrorIs(t, err, ErrSynthesisFailed)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestListVoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/voices", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("xi-api-key"))
		_, _ = w.Write([]byte(`{"voices":[{"voice_id":"v1","name":"Bella","category":"premade"}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", nil)
	c.baseURL = srv.URL

	voices, err := c.ListVoices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "v1", voices[0].VoiceID)
	assert.Equal(t, "Bella", voices[0].Name)
}

func TestPrepareTextForSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain sentence kept", in: "Thank you so much!", want: "Thank you so much!"},
		{
			name: "paragraph break becomes pause",
			in:   "Dear friend\n\nThank you",
			want: "Dear friend. Thank you.",
		},
		{
			name: "single newline becomes brief pause",
			in:   "line one\nline two",
			want: "line one, line two.",
		},
		{
			name: "curly quotes normalized",
			in:   "she said “hello” and it’s fine.",
			want: `she said "hello" and it's fine.`,
		},
		{
			name: "whitespace collapsed",
			in:   "too   many    spaces",
			want: "too many spaces.",
		},
		{
			name: "trailing punctuation added",
			in:   "no punctuation here",
			want: "no punctuation here.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrepareTextForSpeech(tc.in))
		})
	}
}
