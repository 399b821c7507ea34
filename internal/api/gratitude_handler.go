package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/seedling-labs/gratitude-api/internal/api/shared"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/service"
)

// GratitudeHandler handles the daily gratitude API requests: today's entry,
// view tracking, and reflections.
type GratitudeHandler struct {
	surfacingService service.SurfacingService
	validator        *validator.Validate
	timeFunc         func() time.Time
}

// NewGratitudeHandler creates a new GratitudeHandler with the given
// dependencies.
func NewGratitudeHandler(surfacingService service.SurfacingService) *GratitudeHandler {
	return &GratitudeHandler{
		surfacingService: surfacingService,
		validator:        validator.New(),
		timeFunc:         time.Now,
	}
}

// requestDate resolves the date an operation applies to. An explicit date
// query parameter (YYYY-MM-DD) overrides the current day; everything runs
// in UTC.
func (h *GratitudeHandler) requestDate(r *http.Request) (time.Time, error) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		return time.Parse("2006-01-02", raw)
	}
	return h.timeFunc().UTC(), nil
}

// Today handles GET /api/gratitude/today.
func (h *GratitudeHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := h.requestDate(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date format, want YYYY-MM-DD")
		return
	}

	daily, err := h.surfacingService.GetDailyGratitude(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, daily)
}

// MarkViewed handles POST /api/gratitude/today/viewed.
func (h *GratitudeHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := h.requestDate(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date format, want YYYY-MM-DD")
		return
	}

	if err := h.surfacingService.MarkViewed(r.Context(), userID, date); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateReflection handles POST /api/gratitude/reflections.
func (h *GratitudeHandler) CreateReflection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ReflectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	date, err := h.requestDate(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date format, want YYYY-MM-DD")
		return
	}

	reflection, err := h.surfacingService.SaveReflection(r.Context(), userID, date, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, reflection)
}

// ListReflections handles GET /api/gratitude/reflections.
func (h *GratitudeHandler) ListReflections(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	reflections, err := h.surfacingService.ListReflections(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reflections")
		return
	}
	if reflections == nil {
		reflections = []*domain.Reflection{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reflections)
}
