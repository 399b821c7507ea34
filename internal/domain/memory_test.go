package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMemory(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	text := "Dear Sam, thank you for the wonderful birthday card."

	memory, err := NewMemory(userID, text, MemorySourceCard)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if memory.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if memory.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, memory.UserID)
	}

	if memory.ExtractedText != text {
		t.Errorf("Expected text %s, got %s", text, memory.ExtractedText)
	}

	if memory.Processed {
		t.Error("Expected new memory to be unprocessed")
	}

	if memory.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if memory.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid userID
	_, err = NewMemory(uuid.Nil, text, MemorySourceCard)
	if err != ErrEmptyMemoryUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyMemoryUserID, err)
	}

	// Test empty text
	_, err = NewMemory(userID, "", MemorySourceCard)
	if err != ErrEmptyMemoryText {
		t.Errorf("Expected error %v, got %v", ErrEmptyMemoryText, err)
	}

	// Test unrecognized source type
	_, err = NewMemory(userID, text, MemorySourceType("telegram"))
	if err != ErrInvalidSourceType {
		t.Errorf("Expected error %v, got %v", ErrInvalidSourceType, err)
	}
}

func TestMemoryValidate(t *testing.T) {
	t.Parallel()
	validMemory := Memory{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ExtractedText: "Test memory",
		SourceType:    MemorySourceLetter,
	}

	if err := validMemory.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidMemory := validMemory
	invalidMemory.ID = uuid.Nil
	if err := invalidMemory.Validate(); err != ErrEmptyMemoryID {
		t.Errorf("Expected error %v, got %v", ErrEmptyMemoryID, err)
	}

	invalidMemory = validMemory
	invalidMemory.UserID = uuid.Nil
	if err := invalidMemory.Validate(); err != ErrEmptyMemoryUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyMemoryUserID, err)
	}

	invalidMemory = validMemory
	invalidMemory.ExtractedText = ""
	if err := invalidMemory.Validate(); err != ErrEmptyMemoryText {
		t.Errorf("Expected error %v, got %v", ErrEmptyMemoryText, err)
	}

	invalidMemory = validMemory
	invalidMemory.SourceType = "invalid_source"
	if err := invalidMemory.Validate(); err != ErrInvalidSourceType {
		t.Errorf("Expected error %v, got %v", ErrInvalidSourceType, err)
	}
}

func TestMemoryMarkProcessed(t *testing.T) {
	t.Parallel()
	memory, err := NewMemory(uuid.New(), "Test memory", MemorySourceNote)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	origUpdatedAt := memory.UpdatedAt
	memory.MarkProcessed()

	if !memory.Processed {
		t.Error("Expected memory to be marked processed")
	}

	if memory.UpdatedAt.Before(origUpdatedAt) {
		t.Error("Expected UpdatedAt to be refreshed")
	}
}

func TestIsValidSourceType(t *testing.T) {
	t.Parallel()
	valid := []MemorySourceType{
		MemorySourceCard,
		MemorySourceLetter,
		MemorySourceNote,
		MemorySourceEmail,
		MemorySourcePhoto,
		MemorySourceAudio,
		MemorySourceOther,
	}

	for _, st := range valid {
		if !isValidSourceType(st) {
			t.Errorf("Expected source type %s to be valid", st)
		}
	}

	if isValidSourceType("postcard") {
		t.Error("Expected unrecognized source type to be invalid")
	}
}
