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

// PostgresMemoryStore implements the store.MemoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMemoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMemoryStore creates a new PostgreSQL implementation of the
// MemoryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresMemoryStore(db store.DBTX, log *slog.Logger) *PostgresMemoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresMemoryStore{
		db:     db,
		logger: log.With(slog.String("component", "memory_store")),
	}
}

// Ensure PostgresMemoryStore implements store.MemoryStore interface
var _ store.MemoryStore = (*PostgresMemoryStore)(nil)

// Create implements store.MemoryStore.Create.
func (s *PostgresMemoryStore) Create(ctx context.Context, memory *domain.Memory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := memory.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO memories (id, user_id, extracted_text, image_url, source_type,
			sender_name, occasion, date_received, processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.ExecContext(ctx, query,
		memory.ID,
		memory.UserID,
		memory.ExtractedText,
		nullString(memory.ImageURL),
		string(memory.SourceType),
		nullString(memory.SenderName),
		nullString(memory.Occasion),
		memory.DateReceived,
		memory.Processed,
		memory.CreatedAt,
		memory.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create memory",
			"memory_id", memory.ID,
			"user_id", memory.UserID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.MemoryStore.GetByID.
// Returns store.ErrMemoryNotFound if the memory does not exist.
func (s *PostgresMemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Memory, error) {
	query := `
		SELECT id, user_id, extracted_text, image_url, source_type,
			sender_name, occasion, date_received, processed, created_at, updated_at
		FROM memories
		WHERE id = $1
	`

	memory, err := scanMemory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrMemoryNotFound
		}
		return nil, MapError(err)
	}

	return memory, nil
}

// ListByUser implements store.MemoryStore.ListByUser. An optional search
// term filters by sender name, occasion or extracted text, matched
// case-insensitively.
func (s *PostgresMemoryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	search string,
) ([]*domain.Memory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var query string
	var args []interface{}

	if search != "" {
		query = `
			SELECT id, user_id, extracted_text, image_url, source_type,
				sender_name, occasion, date_received, processed, created_at, updated_at
			FROM memories
			WHERE user_id = $1
			  AND (sender_name ILIKE $2 OR occasion ILIKE $2 OR extracted_text ILIKE $2)
			ORDER BY created_at DESC
		`
		args = []interface{}{userID, "%" + search + "%"}
	} else {
		query = `
			SELECT id, user_id, extracted_text, image_url, source_type,
				sender_name, occasion, date_received, processed, created_at, updated_at
			FROM memories
			WHERE user_id = $1
			ORDER BY created_at DESC
		`
		args = []interface{}{userID}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query memories", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	memories := []*domain.Memory{}
	for rows.Next() {
		memory, err := scanMemory(rows)
		if err != nil {
			log.Error("failed to scan memory row", "user_id", userID, "error", err)
			return nil, fmt.Errorf("failed to scan memory row: %w", err)
		}
		memories = append(memories, memory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memory rows: %w", err)
	}

	return memories, nil
}

// MarkProcessed implements store.MemoryStore.MarkProcessed.
// Returns store.ErrMemoryNotFound if the memory does not exist.
func (s *PostgresMemoryStore) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE memories
		SET processed = TRUE, updated_at = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrMemoryNotFound)
}

// ListSenders implements store.MemoryStore.ListSenders. Names are returned
// as stored; callers normalize them for matching.
func (s *PostgresMemoryStore) ListSenders(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT sender_name
		FROM memories
		WHERE user_id = $1 AND sender_name IS NOT NULL AND sender_name <> ''
		ORDER BY sender_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	senders := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sender row: %w", err)
		}
		senders = append(senders, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sender rows: %w", err)
	}

	return senders, nil
}

// WithTx implements store.MemoryStore.WithTx.
func (s *PostgresMemoryStore) WithTx(tx *sql.Tx) store.MemoryStore {
	return &PostgresMemoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMemory reads one memories row into a domain.Memory.
func scanMemory(row rowScanner) (*domain.Memory, error) {
	memory := &domain.Memory{}
	var imageURL, senderName, occasion sql.NullString
	var dateReceived sql.NullTime
	var sourceType string

	err := row.Scan(
		&memory.ID,
		&memory.UserID,
		&memory.ExtractedText,
		&imageURL,
		&sourceType,
		&senderName,
		&occasion,
		&dateReceived,
		&memory.Processed,
		&memory.CreatedAt,
		&memory.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	memory.SourceType = domain.MemorySourceType(sourceType)
	memory.ImageURL = imageURL.String
	memory.SenderName = senderName.String
	memory.Occasion = occasion.String
	if dateReceived.Valid {
		t := dateReceived.Time
		memory.DateReceived = &t
	}

	return memory, nil
}

// nullString maps an empty string to NULL for optional text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
