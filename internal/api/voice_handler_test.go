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

	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// mockVoiceService implements service.VoiceService for handler tests.
type mockVoiceService struct {
	voice      *domain.SenderVoice
	upsertErr  error
	voices     []*domain.SenderVoice
	deleteErr  error
	defaultErr error
	resolved   string
}

func (m *mockVoiceService) UpsertVoice(_ context.Context, userID uuid.UUID, senderName, voiceID, notes string) (*domain.SenderVoice, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	return domain.NewSenderVoice(userID, senderName, voiceID, notes)
}

func (m *mockVoiceService) ListVoices(_ context.Context, _ uuid.UUID) ([]*domain.SenderVoice, error) {
	return m.voices, nil
}

func (m *mockVoiceService) DeleteVoice(_ context.Context, _ uuid.UUID, _ string) error {
	return m.deleteErr
}

func (m *mockVoiceService) SetDefaultVoice(_ context.Context, _ uuid.UUID, _ string) error {
	return m.defaultErr
}

func (m *mockVoiceService) ResolveVoice(_ context.Context, _ uuid.UUID, _ string) (string, error) {
	return m.resolved, nil
}

func TestUpsertVoiceEndpoint(t *testing.T) {
	handler := NewVoiceHandler(&mockVoiceService{})

	body, err := json.Marshal(UpsertVoiceRequest{SenderName: "Grandma", VoiceID: "voice-1"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Upsert(recorder, authedRequest("PUT", "/api/voices", body, uuid.New()))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp domain.SenderVoice
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Grandma", resp.SenderName)
	assert.Equal(t, "voice-1", resp.VoiceID)
}

func TestUpsertVoiceEndpoint_MissingSender(t *testing.T) {
	handler := NewVoiceHandler(&mockVoiceService{})

	body, err := json.Marshal(UpsertVoiceRequest{VoiceID: "voice-1"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Upsert(recorder, authedRequest("PUT", "/api/voices", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteVoiceEndpoint_NotFound(t *testing.T) {
	handler := NewVoiceHandler(&mockVoiceService{deleteErr: service.ErrVoiceNotFound})

	req := authedRequest("DELETE", "/api/voices/nobody", nil, uuid.New())
	req = withChiURLParam(req, "sender", "nobody")

	recorder := httptest.NewRecorder()
	handler.Delete(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSetDefaultVoiceEndpoint(t *testing.T) {
	handler := NewVoiceHandler(&mockVoiceService{})

	req := authedRequest("POST", "/api/voices/Mom/default", nil, uuid.New())
	req = withChiURLParam(req, "sender", "Mom")

	recorder := httptest.NewRecorder()
	handler.SetDefault(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestListVoicesEndpoint_EmptyIsArray(t *testing.T) {
	handler := NewVoiceHandler(&mockVoiceService{})

	recorder := httptest.NewRecorder()
	handler.List(recorder, authedRequest("GET", "/api/voices", nil, uuid.New()))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}
