package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for SenderVoice
var (
	ErrEmptyVoiceID         = errors.New("sender voice ID cannot be empty")
	ErrEmptyVoiceUserID     = errors.New("sender voice user ID cannot be empty")
	ErrEmptyVoiceSenderName = errors.New("sender name cannot be empty")
)

// SenderVoice maps a sender name to a speech-synthesis voice for a user.
// The sender name is matched case-insensitively; an absent VoiceID means
// "use the fallback voice". At most one voice per user may be the default.
type SenderVoice struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	SenderName string    `json:"sender_name"`
	VoiceID    string    `json:"voice_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSenderVoice creates a new SenderVoice mapping for the given user.
// The sender name is trimmed; an empty voice ID is allowed and means the
// fallback voice applies.
func NewSenderVoice(userID uuid.UUID, senderName, voiceID, notes string) (*SenderVoice, error) {
	voice := &SenderVoice{
		ID:         uuid.New(),
		UserID:     userID,
		SenderName: strings.TrimSpace(senderName),
		VoiceID:    voiceID,
		Notes:      notes,
		IsDefault:  false,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := voice.Validate(); err != nil {
		return nil, err
	}

	return voice, nil
}

// Validate checks if the SenderVoice has valid data.
func (v *SenderVoice) Validate() error {
	if v.ID == uuid.Nil {
		return ErrEmptyVoiceID
	}

	if v.UserID == uuid.Nil {
		return ErrEmptyVoiceUserID
	}

	if v.SenderName == "" {
		return ErrEmptyVoiceSenderName
	}

	return nil
}

// NormalizedSenderName returns the case-insensitive lookup key for the
// sender name.
func (v *SenderVoice) NormalizedSenderName() string {
	return NormalizeSenderName(v.SenderName)
}

// NormalizeSenderName lowercases and trims a sender name so mappings match
// regardless of how the sender was capitalized at upload time.
func NormalizeSenderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
