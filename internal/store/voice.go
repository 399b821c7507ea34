package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// VoiceStore defines the interface for sender voice mapping persistence.
// Mappings are keyed by (user, lowercased sender name).
type VoiceStore interface {
	// Upsert inserts or replaces the mapping for the voice's sender name.
	Upsert(ctx context.Context, voice *domain.SenderVoice) error

	// GetBySender retrieves the mapping for a sender name,
	// case-insensitively. Returns ErrVoiceNotFound if no mapping exists.
	GetBySender(ctx context.Context, userID uuid.UUID, senderName string) (*domain.SenderVoice, error)

	// GetDefault retrieves the user's default voice mapping.
	// Returns ErrVoiceNotFound if the user has no default.
	GetDefault(ctx context.Context, userID uuid.UUID) (*domain.SenderVoice, error)

	// ListByUser retrieves all of a user's voice mappings ordered by sender
	// name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SenderVoice, error)

	// SetDefault marks the mapping for the given sender as the user's
	// default and clears the flag on every other mapping, preserving the
	// at-most-one-default invariant. Must run within a transaction.
	// Returns ErrVoiceNotFound if no mapping exists for the sender.
	SetDefault(ctx context.Context, userID uuid.UUID, senderName string) error

	// DeleteBySender removes the mapping for a sender name.
	// Returns ErrVoiceNotFound if no mapping exists.
	DeleteBySender(ctx context.Context, userID uuid.UUID, senderName string) error

	// WithTx returns a new VoiceStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) VoiceStore
}
