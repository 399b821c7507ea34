package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// ReflectionStore defines the interface for reflection persistence.
// Reflections are append-only.
type ReflectionStore interface {
	// Create saves a new reflection.
	// Returns ErrInvalidEntity if the referenced entry does not exist.
	Create(ctx context.Context, reflection *domain.Reflection) error

	// ListByUser retrieves a user's reflections ordered by creation time,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reflection, error)

	// WithTx returns a new ReflectionStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ReflectionStore
}
