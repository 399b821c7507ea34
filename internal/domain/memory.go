package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MemorySourceType identifies what kind of artifact a memory was created from.
type MemorySourceType string

// Possible memory source types
const (
	MemorySourceCard   MemorySourceType = "card"
	MemorySourceLetter MemorySourceType = "letter"
	MemorySourceNote   MemorySourceType = "note"
	MemorySourceEmail  MemorySourceType = "email"
	MemorySourcePhoto  MemorySourceType = "photo"
	MemorySourceAudio  MemorySourceType = "audio"
	MemorySourceOther  MemorySourceType = "other"
)

// Common validation errors for Memory
var (
	ErrEmptyMemoryID     = errors.New("memory ID cannot be empty")
	ErrEmptyMemoryUserID = errors.New("memory user ID cannot be empty")
	ErrEmptyMemoryText   = errors.New("memory text cannot be empty")
)

// Memory represents one uploaded artifact (a scanned card, letter, photo or
// audio recording) together with the text extracted from it. A memory is
// created on upload and mutated only to flip the Processed flag once
// gratitude entries have been derived from it.
type Memory struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	ExtractedText string           `json:"extracted_text"`
	ImageURL      string           `json:"image_url,omitempty"`
	SourceType    MemorySourceType `json:"source_type"`
	SenderName    string           `json:"sender_name,omitempty"`
	Occasion      string           `json:"occasion,omitempty"`
	DateReceived  *time.Time       `json:"date_received,omitempty"`
	Processed     bool             `json:"processed"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewMemory creates a new unprocessed Memory with the given owner, text and
// source type. It generates a new UUID and sets the timestamps.
// Returns an error if validation fails.
func NewMemory(userID uuid.UUID, text string, sourceType MemorySourceType) (*Memory, error) {
	memory := &Memory{
		ID:            uuid.New(),
		UserID:        userID,
		ExtractedText: text,
		SourceType:    sourceType,
		Processed:     false,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := memory.Validate(); err != nil {
		return nil, err
	}

	return memory, nil
}

// Validate checks if the Memory has valid data.
func (m *Memory) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMemoryID
	}

	if m.UserID == uuid.Nil {
		return ErrEmptyMemoryUserID
	}

	if m.ExtractedText == "" {
		return ErrEmptyMemoryText
	}

	if !isValidSourceType(m.SourceType) {
		return ErrInvalidSourceType
	}

	return nil
}

// MarkProcessed flips the processed flag and updates the UpdatedAt
// timestamp. This is the only mutation a memory goes through after upload.
func (m *Memory) MarkProcessed() {
	m.Processed = true
	m.UpdatedAt = time.Now().UTC()
}

// isValidSourceType checks if the given source type is recognized.
func isValidSourceType(t MemorySourceType) bool {
	switch t {
	case MemorySourceCard, MemorySourceLetter, MemorySourceNote,
		MemorySourceEmail, MemorySourcePhoto, MemorySourceAudio, MemorySourceOther:
		return true
	default:
		return false
	}
}
