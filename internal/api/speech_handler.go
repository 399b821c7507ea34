package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/seedling-labs/gratitude-api/internal/api/shared"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// SpeechHandler handles speech synthesis API requests.
type SpeechHandler struct {
	speechService service.SpeechService
	validator     *validator.Validate
}

// NewSpeechHandler creates a new SpeechHandler with the given dependencies.
func NewSpeechHandler(speechService service.SpeechService) *SpeechHandler {
	return &SpeechHandler{
		speechService: speechService,
		validator:     validator.New(),
	}
}

// Synthesize handles POST /api/speech, returning MP3 audio spoken with the
// voice mapped to the sender.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SynthesizeSpeechRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	audio, err := h.speechService.SynthesizeStory(r.Context(), userID, req.Text, req.SenderName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		// The client went away mid-stream; nothing to send back.
		return
	}
}

// ListVoices handles GET /api/speech/voices.
func (h *SpeechHandler) ListVoices(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	voices, err := h.speechService.AvailableVoices(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list voices")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, voices)
}
