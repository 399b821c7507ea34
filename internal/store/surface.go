package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// SurfaceStore defines the interface for daily surface persistence.
// The table carries a unique constraint on (user_id, surfaced_on); that
// constraint is the concurrency guard for the select-or-insert sequence.
type SurfaceStore interface {
	// GetForDate retrieves the surface chosen for a user on a calendar
	// date. Returns ErrSurfaceNotFound if no surface exists yet.
	GetForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailySurface, error)

	// InsertIfAbsent writes a new surface unless one already exists for the
	// same user and date. On a unique constraint violation it returns
	// ErrSurfaceExists without modifying anything; the caller re-reads the
	// winning row. This is the atomic step of the idempotent daily pick.
	InsertIfAbsent(ctx context.Context, surface *domain.DailySurface) error

	// ListRecent retrieves a user's surfaces on or after sinceDate,
	// newest first. Used for recency avoidance.
	ListRecent(ctx context.Context, userID uuid.UUID, sinceDate time.Time) ([]*domain.DailySurface, error)

	// MarkViewed records that the user has seen the surface for the given
	// date. Idempotent: the first viewed timestamp is kept.
	// Returns ErrSurfaceNotFound if no surface exists for the date.
	MarkViewed(ctx context.Context, userID uuid.UUID, date time.Time) error

	// LinkReflection attaches a reflection to the surface that prompted it.
	// Returns ErrSurfaceNotFound if no surface exists for the date.
	LinkReflection(ctx context.Context, userID uuid.UUID, date time.Time, reflectionID uuid.UUID) error

	// WithTx returns a new SurfaceStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SurfaceStore
}
