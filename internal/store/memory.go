package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// MemoryStore defines the interface for memory data persistence.
type MemoryStore interface {
	// Create saves a new memory to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, memory *domain.Memory) error

	// GetByID retrieves a memory by its unique ID.
	// Returns ErrMemoryNotFound if the memory does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Memory, error)

	// ListByUser retrieves a user's memories ordered by creation time,
	// newest first. An optional search term filters by sender name,
	// occasion or extracted text. Returns an empty slice when nothing
	// matches.
	ListByUser(ctx context.Context, userID uuid.UUID, search string) ([]*domain.Memory, error)

	// MarkProcessed flips the processed flag on a memory once entries have
	// been derived from it. Returns ErrMemoryNotFound if the memory does
	// not exist.
	MarkProcessed(ctx context.Context, id uuid.UUID) error

	// ListSenders returns the distinct non-empty sender names across a
	// user's memories, for the voice management UI.
	ListSenders(ctx context.Context, userID uuid.UUID) ([]string, error)

	// WithTx returns a new MemoryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) MemoryStore
}
