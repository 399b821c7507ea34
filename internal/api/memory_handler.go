package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/seedling-labs/gratitude-api/internal/api/shared"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/extraction"
	"github.com/seedling-labs/gratitude-api/internal/ingest"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// maxUploadBytes caps document and image uploads (10MB).
const maxUploadBytes = 10 << 20

// MemoryHandler handles memory-related API requests: text uploads, document
// uploads, image transcription, and retrieval.
type MemoryHandler struct {
	memoryService service.MemoryService
	transcriber   extraction.Transcriber
	validator     *validator.Validate
}

// NewMemoryHandler creates a new MemoryHandler with the given dependencies.
// The transcriber may be nil, which disables image transcription.
func NewMemoryHandler(
	memoryService service.MemoryService,
	transcriber extraction.Transcriber,
) *MemoryHandler {
	return &MemoryHandler{
		memoryService: memoryService,
		transcriber:   transcriber,
		validator:     validator.New(),
	}
}

// Create handles POST /api/memories with a JSON body.
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateMemoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload := service.MemoryUpload{
		Text:       req.Text,
		ImageURL:   req.ImageURL,
		SourceType: domain.MemorySourceType(req.SourceType),
		SenderName: req.SenderName,
		Occasion:   req.Occasion,
	}
	if upload.SourceType == "" {
		upload.SourceType = domain.MemorySourceOther
	}
	if req.DateReceived != "" {
		received, err := time.Parse("2006-01-02", req.DateReceived)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date_received format")
			return
		}
		upload.DateReceived = &received
	}

	memory, err := h.memoryService.CreateMemoryAndEnqueueExtraction(r.Context(), userID, upload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create memory")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, MemoryResponse{
		Memory: memory,
		Status: "processing",
	})
}

// Upload handles POST /api/memories/upload with a multipart document
// (plain text, markdown, PDF or DOCX). The document's text becomes the
// memory's source text.
func (h *MemoryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, contentType, ok := h.readUpload(w, r, "file")
	if !ok {
		return
	}

	text, err := ingest.ExtractText(data, contentType)
	if err != nil {
		if errors.Is(err, ingest.ErrUnsupportedFormat) {
			shared.RespondWithError(w, r, http.StatusUnsupportedMediaType, "Unsupported document format")
			return
		}
		if errors.Is(err, ingest.ErrEmptyDocument) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Document contains no text")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read document", err)
		return
	}

	upload := service.MemoryUpload{
		Text:       text,
		SourceType: domain.MemorySourceLetter,
		SenderName: r.FormValue("sender_name"),
		Occasion:   r.FormValue("occasion"),
	}
	if st := r.FormValue("source_type"); st != "" {
		upload.SourceType = domain.MemorySourceType(st)
	}

	memory, err := h.memoryService.CreateMemoryAndEnqueueExtraction(r.Context(), userID, upload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create memory")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, MemoryResponse{
		Memory: memory,
		Status: "processing",
	})
}

// Transcribe handles POST /api/memories/transcribe with a multipart image.
// It returns the handwritten or printed text recovered from the image so
// the client can review it before creating a memory.
func (h *MemoryHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	if h.transcriber == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Image transcription is not available")
		return
	}

	data, mediaType, ok := h.readUpload(w, r, "image")
	if !ok {
		return
	}

	switch mediaType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		shared.RespondWithError(w, r, http.StatusUnsupportedMediaType, "Unsupported image format")
		return
	}

	text, err := h.transcriber.TranscribeImage(r.Context(), data, mediaType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway, "Failed to transcribe image", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TranscribeResponse{Text: text})
}

// Get handles GET /api/memories/{id}.
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	memoryID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	memory, err := h.memoryService.GetMemory(r.Context(), userID, memoryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memory)
}

// List handles GET /api/memories with an optional search query parameter.
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	memories, err := h.memoryService.ListMemories(r.Context(), userID, r.URL.Query().Get("search"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list memories")
		return
	}
	if memories == nil {
		memories = []*domain.Memory{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memories)
}

// ListSenders handles GET /api/memories/senders.
func (h *MemoryHandler) ListSenders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	senders, err := h.memoryService.ListSenders(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list senders")
		return
	}
	if senders == nil {
		senders = []string{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, senders)
}

// readUpload reads one multipart file field, enforcing the upload size cap.
// It returns the file bytes and the declared content type. On failure it
// writes an error response and returns ok=false.
func (h *MemoryHandler) readUpload(
	w http.ResponseWriter,
	r *http.Request,
	field string,
) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart request")
		return nil, "", false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+field+" upload")
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read upload", err)
		return nil, "", false
	}

	return data, header.Header.Get("Content-Type"), true
}
