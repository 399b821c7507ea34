package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/platform/logger"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

// PostgresSurfaceStore implements the store.SurfaceStore interface
// using a PostgreSQL database as the storage backend. The unique
// constraint on (user_id, surfaced_on) makes InsertIfAbsent atomic.
type PostgresSurfaceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSurfaceStore creates a new PostgreSQL implementation of the
// SurfaceStore interface.
func NewPostgresSurfaceStore(db store.DBTX, log *slog.Logger) *PostgresSurfaceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresSurfaceStore{
		db:     db,
		logger: log.With(slog.String("component", "surface_store")),
	}
}

// Ensure PostgresSurfaceStore implements store.SurfaceStore interface
var _ store.SurfaceStore = (*PostgresSurfaceStore)(nil)

// GetForDate implements store.SurfaceStore.GetForDate.
// Returns store.ErrSurfaceNotFound if no surface exists for the date.
func (s *PostgresSurfaceStore) GetForDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*domain.DailySurface, error) {
	query := `
		SELECT id, user_id, entry_id, surfaced_on, reason, viewed, viewed_at,
			reflection_id, created_at
		FROM daily_surfaces
		WHERE user_id = $1 AND surfaced_on = $2
	`

	surface, err := scanSurface(s.db.QueryRowContext(ctx, query, userID, domain.TruncateToDate(date)))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrSurfaceNotFound
		}
		return nil, MapError(err)
	}

	return surface, nil
}

// InsertIfAbsent implements store.SurfaceStore.InsertIfAbsent. On a unique
// violation for the (user_id, surfaced_on) key it returns
// store.ErrSurfaceExists without modifying anything.
func (s *PostgresSurfaceStore) InsertIfAbsent(ctx context.Context, surface *domain.DailySurface) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := surface.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO daily_surfaces (id, user_id, entry_id, surfaced_on, reason,
			viewed, viewed_at, reflection_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		surface.ID,
		surface.UserID,
		surface.EntryID,
		surface.SurfacedOn,
		surface.Reason,
		surface.Viewed,
		surface.ViewedAt,
		surface.ReflectionID,
		surface.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("surface already exists for date",
				"user_id", surface.UserID,
				"surfaced_on", surface.SurfacedOn)
			return MapUniqueViolation(err, store.ErrSurfaceExists)
		}
		log.Error("failed to insert daily surface",
			"user_id", surface.UserID,
			"entry_id", surface.EntryID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListRecent implements store.SurfaceStore.ListRecent.
func (s *PostgresSurfaceStore) ListRecent(
	ctx context.Context,
	userID uuid.UUID,
	sinceDate time.Time,
) ([]*domain.DailySurface, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, entry_id, surfaced_on, reason, viewed, viewed_at,
			reflection_id, created_at
		FROM daily_surfaces
		WHERE user_id = $1 AND surfaced_on >= $2
		ORDER BY surfaced_on DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, domain.TruncateToDate(sinceDate))
	if err != nil {
		log.Error("failed to query recent surfaces", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	surfaces := []*domain.DailySurface{}
	for rows.Next() {
		surface, err := scanSurface(rows)
		if err != nil {
			log.Error("failed to scan surface row", "user_id", userID, "error", err)
			return nil, fmt.Errorf("failed to scan surface row: %w", err)
		}
		surfaces = append(surfaces, surface)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surface rows: %w", err)
	}

	return surfaces, nil
}

// MarkViewed implements store.SurfaceStore.MarkViewed. The first viewed
// timestamp wins; replays leave the row untouched but still succeed.
func (s *PostgresSurfaceStore) MarkViewed(ctx context.Context, userID uuid.UUID, date time.Time) error {
	query := `
		UPDATE daily_surfaces
		SET viewed = TRUE,
			viewed_at = COALESCE(viewed_at, $1)
		WHERE user_id = $2 AND surfaced_on = $3
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), userID, domain.TruncateToDate(date))
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrSurfaceNotFound)
}

// LinkReflection implements store.SurfaceStore.LinkReflection.
func (s *PostgresSurfaceStore) LinkReflection(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	reflectionID uuid.UUID,
) error {
	query := `
		UPDATE daily_surfaces
		SET reflection_id = $1
		WHERE user_id = $2 AND surfaced_on = $3
	`

	result, err := s.db.ExecContext(ctx, query, reflectionID, userID, domain.TruncateToDate(date))
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrSurfaceNotFound)
}

// WithTx implements store.SurfaceStore.WithTx.
func (s *PostgresSurfaceStore) WithTx(tx *sql.Tx) store.SurfaceStore {
	return &PostgresSurfaceStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanSurface reads one daily_surfaces row into a domain.DailySurface.
func scanSurface(row rowScanner) (*domain.DailySurface, error) {
	surface := &domain.DailySurface{}
	var viewedAt sql.NullTime
	var reflectionID uuid.NullUUID

	err := row.Scan(
		&surface.ID,
		&surface.UserID,
		&surface.EntryID,
		&surface.SurfacedOn,
		&surface.Reason,
		&surface.Viewed,
		&viewedAt,
		&reflectionID,
		&surface.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE columns come back at midnight in the session time zone; pin to UTC.
	surface.SurfacedOn = domain.TruncateToDate(surface.SurfacedOn)
	if viewedAt.Valid {
		t := viewedAt.Time
		surface.ViewedAt = &t
	}
	if reflectionID.Valid {
		id := reflectionID.UUID
		surface.ReflectionID = &id
	}

	return surface, nil
}
