package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// UserStore persists registered users.
type UserStore interface {
	// Create validates the user, hashes the plaintext password and saves
	// the record. Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns the user with the given ID, or ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns the user registered under the given email
	// address, or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to the caller-managed transaction.
	WithTx(tx *sql.Tx) UserStore
}
