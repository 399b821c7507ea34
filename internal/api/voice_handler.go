package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/seedling-labs/gratitude-api/internal/api/shared"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// VoiceHandler handles sender voice mapping API requests.
type VoiceHandler struct {
	voiceService service.VoiceService
	validator    *validator.Validate
}

// NewVoiceHandler creates a new VoiceHandler with the given dependencies.
func NewVoiceHandler(voiceService service.VoiceService) *VoiceHandler {
	return &VoiceHandler{
		voiceService: voiceService,
		validator:    validator.New(),
	}
}

// Upsert handles PUT /api/voices.
func (h *VoiceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpsertVoiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	voice, err := h.voiceService.UpsertVoice(r.Context(), userID, req.SenderName, req.VoiceID, req.Notes)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save voice mapping")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, voice)
}

// List handles GET /api/voices.
func (h *VoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	voices, err := h.voiceService.ListVoices(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list voice mappings")
		return
	}
	if voices == nil {
		voices = []*domain.SenderVoice{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, voices)
}

// Delete handles DELETE /api/voices/{sender}.
func (h *VoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sender := chi.URLParam(r, "sender")
	if sender == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Sender name is required")
		return
	}

	if err := h.voiceService.DeleteVoice(r.Context(), userID, sender); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetDefault handles POST /api/voices/{sender}/default.
func (h *VoiceHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sender := chi.URLParam(r, "sender")
	if sender == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Sender name is required")
		return
	}

	if err := h.voiceService.SetDefaultVoice(r.Context(), userID, sender); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
