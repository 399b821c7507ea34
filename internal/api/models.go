package api

import (
	"github.com/google/uuid"

	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateMemoryRequest defines the payload for uploading a memory as text.
type CreateMemoryRequest struct {
	Text         string `json:"text"          validate:"required,min=1"`
	ImageURL     string `json:"image_url"     validate:"omitempty,url"`
	SourceType   string `json:"source_type"   validate:"omitempty,oneof=card letter note email photo audio other"`
	SenderName   string `json:"sender_name"   validate:"omitempty,max=200"`
	Occasion     string `json:"occasion"      validate:"omitempty,max=200"`
	DateReceived string `json:"date_received" validate:"omitempty,datetime=2006-01-02"`
}

// MemoryResponse wraps a created memory with its processing status.
type MemoryResponse struct {
	Memory *domain.Memory `json:"memory"`
	Status string         `json:"status"`
}

// TranscribeResponse carries the text recovered from an uploaded image.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// ReflectionRequest defines the payload for saving a reflection on the
// day's surfaced entry.
type ReflectionRequest struct {
	Text string `json:"text" validate:"required,min=1,max=5000"`
}

// UpsertVoiceRequest defines the payload for creating or replacing a
// sender's voice mapping.
type UpsertVoiceRequest struct {
	SenderName string `json:"sender_name" validate:"required,min=1,max=200"`
	VoiceID    string `json:"voice_id"    validate:"omitempty,max=100"`
	Notes      string `json:"notes"       validate:"omitempty,max=1000"`
}

// SynthesizeSpeechRequest defines the payload for the speech endpoint.
type SynthesizeSpeechRequest struct {
	Text       string `json:"text"        validate:"required,min=1,max=10000"`
	SenderName string `json:"sender_name" validate:"omitempty,max=200"`
}
