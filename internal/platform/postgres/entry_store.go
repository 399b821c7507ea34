package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/platform/logger"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

// PostgresEntryStore implements the store.EntryStore interface
// using a PostgreSQL database as the storage backend. The list-valued
// fields (details, tags, holidays) are stored as JSONB.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL implementation of the
// EntryStore interface.
func NewPostgresEntryStore(db store.DBTX, log *slog.Logger) *PostgresEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresEntryStore{
		db:     db,
		logger: log.With(slog.String("component", "entry_store")),
	}
}

// Ensure PostgresEntryStore implements store.EntryStore interface
var _ store.EntryStore = (*PostgresEntryStore)(nil)

// CreateBatch implements store.EntryStore.CreateBatch. All entries are
// validated before any insert so a failing entry never leaves a partial
// batch behind; the caller supplies the transaction.
func (s *PostgresEntryStore) CreateBatch(ctx context.Context, entries []*domain.GratitudeEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	query := `
		INSERT INTO gratitude_entries (id, user_id, memory_id, entry_code,
			core_theme, summary_story, specific_details, reflection_prompt,
			tags, season, holidays, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, entry := range entries {
		details, err := json.Marshal(emptyIfNil(entry.SpecificDetails))
		if err != nil {
			return fmt.Errorf("failed to marshal entry details: %w", err)
		}
		tags, err := json.Marshal(emptyIfNil(entry.Tags))
		if err != nil {
			return fmt.Errorf("failed to marshal entry tags: %w", err)
		}
		holidays, err := json.Marshal(emptyIfNil(entry.Holidays))
		if err != nil {
			return fmt.Errorf("failed to marshal entry holidays: %w", err)
		}

		_, err = s.db.ExecContext(ctx, query,
			entry.ID,
			entry.UserID,
			entry.MemoryID,
			entry.EntryCode,
			entry.CoreTheme,
			entry.SummaryStory,
			details,
			entry.ReflectionPrompt,
			tags,
			string(entry.Season),
			holidays,
			entry.CreatedAt,
		)
		if err != nil {
			log.Error("failed to create gratitude entry",
				"entry_id", entry.ID,
				"memory_id", entry.MemoryID,
				"error", err)
			return MapError(err)
		}
	}

	return nil
}

// GetByID implements store.EntryStore.GetByID.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *PostgresEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GratitudeEntry, error) {
	query := `
		SELECT id, user_id, memory_id, entry_code, core_theme, summary_story,
			specific_details, reflection_prompt, tags, season, holidays, created_at
		FROM gratitude_entries
		WHERE id = $1
	`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrEntryNotFound
		}
		return nil, MapError(err)
	}

	return entry, nil
}

// ListByUser implements store.EntryStore.ListByUser. Entries come back
// oldest first with the ID as a secondary key, so the ordering is stable
// across calls.
func (s *PostgresEntryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GratitudeEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, memory_id, entry_code, core_theme, summary_story,
			specific_details, reflection_prompt, tags, season, holidays, created_at
		FROM gratitude_entries
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query gratitude entries", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := []*domain.GratitudeEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan entry row", "user_id", userID, "error", err)
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

// WithTx implements store.EntryStore.WithTx.
func (s *PostgresEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	return &PostgresEntryStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanEntry reads one gratitude_entries row into a domain.GratitudeEntry.
func scanEntry(row rowScanner) (*domain.GratitudeEntry, error) {
	entry := &domain.GratitudeEntry{}
	var details, tags, holidays []byte
	var season string

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.MemoryID,
		&entry.EntryCode,
		&entry.CoreTheme,
		&entry.SummaryStory,
		&details,
		&entry.ReflectionPrompt,
		&tags,
		&season,
		&holidays,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Season = domain.Season(season)
	if err := json.Unmarshal(details, &entry.SpecificDetails); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry details: %w", err)
	}
	if err := json.Unmarshal(tags, &entry.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry tags: %w", err)
	}
	if err := json.Unmarshal(holidays, &entry.Holidays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry holidays: %w", err)
	}

	return entry, nil
}

// emptyIfNil keeps JSONB columns as [] rather than null.
func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
