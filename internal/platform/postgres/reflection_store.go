package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/platform/logger"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

// PostgresReflectionStore implements the store.ReflectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReflectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReflectionStore creates a new PostgreSQL implementation of the
// ReflectionStore interface.
func NewPostgresReflectionStore(db store.DBTX, log *slog.Logger) *PostgresReflectionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresReflectionStore{
		db:     db,
		logger: log.With(slog.String("component", "reflection_store")),
	}
}

// Ensure PostgresReflectionStore implements store.ReflectionStore interface
var _ store.ReflectionStore = (*PostgresReflectionStore)(nil)

// Create implements store.ReflectionStore.Create.
// Returns store.ErrInvalidEntity if the referenced entry does not exist.
func (s *PostgresReflectionStore) Create(ctx context.Context, reflection *domain.Reflection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reflection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO reflections (id, user_id, entry_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		reflection.ID,
		reflection.UserID,
		reflection.EntryID,
		reflection.Text,
		reflection.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create reflection",
			"reflection_id", reflection.ID,
			"entry_id", reflection.EntryID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.ReflectionStore.ListByUser.
func (s *PostgresReflectionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reflection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, entry_id, text, created_at
		FROM reflections
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query reflections", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	reflections := []*domain.Reflection{}
	for rows.Next() {
		reflection := &domain.Reflection{}
		err := rows.Scan(
			&reflection.ID,
			&reflection.UserID,
			&reflection.EntryID,
			&reflection.Text,
			&reflection.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reflection row: %w", err)
		}
		reflections = append(reflections, reflection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reflection rows: %w", err)
	}

	return reflections, nil
}

// WithTx implements store.ReflectionStore.WithTx.
func (s *PostgresReflectionStore) WithTx(tx *sql.Tx) store.ReflectionStore {
	return &PostgresReflectionStore{
		db:     tx,
		logger: s.logger,
	}
}
