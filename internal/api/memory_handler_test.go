package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedling-labs/gratitude-api/internal/api/shared"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// mockMemoryService implements service.MemoryService for handler tests.
type mockMemoryService struct {
	memory    *domain.Memory
	createErr error
	getErr    error
	memories  []*domain.Memory
	senders   []string
	gotUpload service.MemoryUpload
}

func (m *mockMemoryService) CreateMemoryAndEnqueueExtraction(
	_ context.Context,
	userID uuid.UUID,
	upload service.MemoryUpload,
) (*domain.Memory, error) {
	m.gotUpload = upload
	if m.createErr != nil {
		return nil, m.createErr
	}
	memory, err := domain.NewMemory(userID, upload.Text, upload.SourceType)
	if err != nil {
		return nil, err
	}
	m.memory = memory
	return memory, nil
}

func (m *mockMemoryService) GetMemory(_ context.Context, _, _ uuid.UUID) (*domain.Memory, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.memory, nil
}

func (m *mockMemoryService) ListMemories(_ context.Context, _ uuid.UUID, _ string) ([]*domain.Memory, error) {
	return m.memories, nil
}

func (m *mockMemoryService) ListSenders(_ context.Context, _ uuid.UUID) ([]string, error) {
	return m.senders, nil
}

func (m *mockMemoryService) ProcessMemory(_ context.Context, _ uuid.UUID) error { return nil }

// mockTranscriber implements extraction.Transcriber for handler tests.
type mockTranscriber struct {
	text string
	err  error
}

func (m *mockTranscriber) TranscribeImage(_ context.Context, _ []byte, _ string) (string, error) {
	return m.text, m.err
}

// authedMultipartRequest builds an authenticated multipart request from the
// already-written form buffer.
func authedMultipartRequest(path string, body *bytes.Buffer, contentType string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", contentType)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withChiURLParam attaches a chi route parameter to the request, standing in
// for the router.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateMemory(t *testing.T) {
	svc := &mockMemoryService{}
	handler := NewMemoryHandler(svc, &mockTranscriber{})

	body, err := json.Marshal(CreateMemoryRequest{
		Text:         "Thank you for the wonderful summer we spent together.",
		SourceType:   "card",
		SenderName:   "Grandma",
		Occasion:     "birthday",
		DateReceived: "2024-06-15",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Create(recorder, authedRequest("POST", "/api/memories", body, uuid.New()))

	require.Equal(t, http.StatusAccepted, recorder.Code)

	var resp MemoryResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "processing", resp.Status)
	assert.Equal(t, domain.MemorySourceCard, svc.gotUpload.SourceType)
	require.NotNil(t, svc.gotUpload.DateReceived)
	assert.Equal(t, "2024-06-15", svc.gotUpload.DateReceived.Format("2006-01-02"))
}

func TestCreateMemory_DefaultsSourceType(t *testing.T) {
	svc := &mockMemoryService{}
	handler := NewMemoryHandler(svc, &mockTranscriber{})

	body, err := json.Marshal(CreateMemoryRequest{Text: "a note without a declared type"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.Create(recorder, authedRequest("POST", "/api/memories", body, uuid.New()))

	require.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Equal(t, domain.MemorySourceOther, svc.gotUpload.SourceType)
}

func TestCreateMemory_Validation(t *testing.T) {
	tests := []struct {
		name    string
		payload CreateMemoryRequest
	}{
		{"missing text", CreateMemoryRequest{SourceType: "card"}},
		{"bad source type", CreateMemoryRequest{Text: "hi", SourceType: "sculpture"}},
		{"bad date", CreateMemoryRequest{Text: "hi", DateReceived: "June 15th"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMemoryHandler(&mockMemoryService{}, &mockTranscriber{})
			body, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			handler.Create(recorder, authedRequest("POST", "/api/memories", body, uuid.New()))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestUploadMemory_PlainTextDocument(t *testing.T) {
	svc := &mockMemoryService{}
	handler := NewMemoryHandler(svc, &mockTranscriber{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "letter.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Dear friend, thank you for everything."))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("sender_name", "Sam"))
	require.NoError(t, writer.Close())

	req := authedMultipartRequest("/api/memories/upload", &buf, writer.FormDataContentType(), uuid.New())

	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	require.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Contains(t, svc.gotUpload.Text, "thank you for everything")
	assert.Equal(t, "Sam", svc.gotUpload.SenderName)
}

func TestUploadMemory_MissingFile(t *testing.T) {
	handler := NewMemoryHandler(&mockMemoryService{}, &mockTranscriber{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("sender_name", "Sam"))
	require.NoError(t, writer.Close())

	req := authedMultipartRequest("/api/memories/upload", &buf, writer.FormDataContentType(), uuid.New())

	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTranscribe(t *testing.T) {
	handler := NewMemoryHandler(&mockMemoryService{}, &mockTranscriber{text: "Happy birthday, love Mom"})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="card.jpg"`},
		"Content-Type":        {"image/jpeg"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("fake jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := authedMultipartRequest("/api/memories/transcribe", &buf, writer.FormDataContentType(), uuid.New())

	recorder := httptest.NewRecorder()
	handler.Transcribe(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TranscribeResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Happy birthday, love Mom", resp.Text)
}

func TestTranscribe_Unavailable(t *testing.T) {
	handler := NewMemoryHandler(&mockMemoryService{}, nil)

	recorder := httptest.NewRecorder()
	handler.Transcribe(recorder, authedRequest("POST", "/api/memories/transcribe", nil, uuid.New()))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetMemory_NotFound(t *testing.T) {
	handler := NewMemoryHandler(&mockMemoryService{getErr: service.ErrMemoryNotFound}, nil)

	req := authedRequest("GET", "/api/memories/"+uuid.NewString(), nil, uuid.New())
	req = withChiURLParam(req, "id", uuid.NewString())

	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetMemory_NotOwned(t *testing.T) {
	handler := NewMemoryHandler(&mockMemoryService{getErr: service.ErrNotOwned}, nil)

	req := authedRequest("GET", "/api/memories/"+uuid.NewString(), nil, uuid.New())
	req = withChiURLParam(req, "id", uuid.NewString())

	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestListMemories_EmptyIsArray(t *testing.T) {
	handler := NewMemoryHandler(&mockMemoryService{}, nil)

	recorder := httptest.NewRecorder()
	handler.List(recorder, authedRequest("GET", "/api/memories", nil, uuid.New()))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}
