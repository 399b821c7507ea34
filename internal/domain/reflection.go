package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Reflection
var (
	ErrEmptyReflectionID      = errors.New("reflection ID cannot be empty")
	ErrEmptyReflectionUserID  = errors.New("reflection user ID cannot be empty")
	ErrEmptyReflectionEntryID = errors.New("reflection entry ID cannot be empty")
	ErrEmptyReflectionText    = errors.New("reflection text cannot be empty")
)

// Reflection is free text the user writes in response to a surfaced
// gratitude entry. Reflections are immutable once created and are linked
// back into the DailySurface that prompted them.
type Reflection struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EntryID   uuid.UUID `json:"entry_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReflection creates a new Reflection for the given user and entry.
func NewReflection(userID, entryID uuid.UUID, text string) (*Reflection, error) {
	reflection := &Reflection{
		ID:        uuid.New(),
		UserID:    userID,
		EntryID:   entryID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := reflection.Validate(); err != nil {
		return nil, err
	}

	return reflection, nil
}

// Validate checks if the Reflection has valid data.
func (r *Reflection) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReflectionID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReflectionUserID
	}

	if r.EntryID == uuid.Nil {
		return ErrEmptyReflectionEntryID
	}

	if r.Text == "" {
		return ErrEmptyReflectionText
	}

	return nil
}
