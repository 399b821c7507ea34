package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// EntryStore defines the interface for gratitude entry persistence.
// Entries are immutable: they are created in a batch when a memory finishes
// extraction and never updated.
type EntryStore interface {
	// CreateBatch saves all entries derived from one memory. This method
	// must run within a transaction (use WithTx under
	// store.RunInTransaction) so a memory is never left with a partial
	// entry set.
	CreateBatch(ctx context.Context, entries []*domain.GratitudeEntry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GratitudeEntry, error)

	// ListByUser retrieves all of a user's entries ordered by creation
	// time, oldest first. The stable order matters: the daily selector's
	// tie-break indexes into it.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GratitudeEntry, error)

	// WithTx returns a new EntryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) EntryStore
}
