package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Well-known surfacing reasons. Holiday and season reasons carry a suffix,
// e.g. "holiday:Christmas" or "season:winter".
const (
	SurfaceReasonVariety = "variety"
	SurfaceReasonRandom  = "random"

	SurfaceReasonHolidayPrefix = "holiday:"
	SurfaceReasonSeasonPrefix  = "season:"
)

// Common validation errors for DailySurface
var (
	ErrEmptySurfaceID      = errors.New("surface ID cannot be empty")
	ErrEmptySurfaceUserID  = errors.New("surface user ID cannot be empty")
	ErrEmptySurfaceEntryID = errors.New("surface entry ID cannot be empty")
	ErrEmptySurfaceReason  = errors.New("surface reason cannot be empty")
	ErrZeroSurfaceDate     = errors.New("surface date cannot be zero")
)

// DailySurface records that a gratitude entry was chosen for a user on a
// given calendar date. At most one surface exists per (user, date); once
// written it is the answer for that date and must not change even if the
// selection is recomputed.
type DailySurface struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	EntryID      uuid.UUID  `json:"entry_id"`
	SurfacedOn   time.Time  `json:"surfaced_on"` // calendar date, midnight UTC
	Reason       string     `json:"reason"`
	Viewed       bool       `json:"viewed"`
	ViewedAt     *time.Time `json:"viewed_at,omitempty"`
	ReflectionID *uuid.UUID `json:"reflection_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewDailySurface creates a new unviewed DailySurface for the given user,
// entry and calendar date. The date is truncated to midnight UTC so the
// per-day uniqueness key is stable regardless of the caller's clock.
func NewDailySurface(userID, entryID uuid.UUID, date time.Time, reason string) (*DailySurface, error) {
	surface := &DailySurface{
		ID:         uuid.New(),
		UserID:     userID,
		EntryID:    entryID,
		SurfacedOn: TruncateToDate(date),
		Reason:     reason,
		Viewed:     false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := surface.Validate(); err != nil {
		return nil, err
	}

	return surface, nil
}

// Validate checks if the DailySurface has valid data.
func (s *DailySurface) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySurfaceID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySurfaceUserID
	}

	if s.EntryID == uuid.Nil {
		return ErrEmptySurfaceEntryID
	}

	if s.SurfacedOn.IsZero() {
		return ErrZeroSurfaceDate
	}

	if s.Reason == "" {
		return ErrEmptySurfaceReason
	}

	return nil
}

// MarkViewed records that the user has seen the surfaced entry.
// Subsequent calls keep the original viewed timestamp.
func (s *DailySurface) MarkViewed() {
	if s.Viewed {
		return
	}
	now := time.Now().UTC()
	s.Viewed = true
	s.ViewedAt = &now
}

// TruncateToDate strips the time-of-day portion, returning midnight UTC of
// the same calendar day.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
