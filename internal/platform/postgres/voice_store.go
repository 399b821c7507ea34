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

// PostgresVoiceStore implements the store.VoiceStore interface
// using a PostgreSQL database as the storage backend. Sender names are
// matched through lower(sender_name), backed by the unique index on
// (user_id, lower(sender_name)).
type PostgresVoiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVoiceStore creates a new PostgreSQL implementation of the
// VoiceStore interface.
func NewPostgresVoiceStore(db store.DBTX, log *slog.Logger) *PostgresVoiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresVoiceStore{
		db:     db,
		logger: log.With(slog.String("component", "voice_store")),
	}
}

// Ensure PostgresVoiceStore implements store.VoiceStore interface
var _ store.VoiceStore = (*PostgresVoiceStore)(nil)

// Upsert implements store.VoiceStore.Upsert. An existing mapping for the
// same sender keeps its ID, default flag and creation time; voice ID and
// notes are replaced.
func (s *PostgresVoiceStore) Upsert(ctx context.Context, voice *domain.SenderVoice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := voice.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO sender_voices (id, user_id, sender_name, voice_id, notes,
			is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, lower(sender_name)) DO UPDATE
		SET voice_id = EXCLUDED.voice_id,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		voice.ID,
		voice.UserID,
		voice.SenderName,
		nullString(voice.VoiceID),
		nullString(voice.Notes),
		voice.IsDefault,
		voice.CreatedAt,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to upsert sender voice",
			"user_id", voice.UserID,
			"sender_name", voice.SenderName,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetBySender implements store.VoiceStore.GetBySender.
// Returns store.ErrVoiceNotFound if no mapping exists.
func (s *PostgresVoiceStore) GetBySender(
	ctx context.Context,
	userID uuid.UUID,
	senderName string,
) (*domain.SenderVoice, error) {
	query := `
		SELECT id, user_id, sender_name, voice_id, notes, is_default,
			created_at, updated_at
		FROM sender_voices
		WHERE user_id = $1 AND lower(sender_name) = $2
	`

	voice, err := scanVoice(s.db.QueryRowContext(ctx, query, userID, domain.NormalizeSenderName(senderName)))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrVoiceNotFound
		}
		return nil, MapError(err)
	}

	return voice, nil
}

// GetDefault implements store.VoiceStore.GetDefault.
// Returns store.ErrVoiceNotFound if the user has no default mapping.
func (s *PostgresVoiceStore) GetDefault(ctx context.Context, userID uuid.UUID) (*domain.SenderVoice, error) {
	query := `
		SELECT id, user_id, sender_name, voice_id, notes, is_default,
			created_at, updated_at
		FROM sender_voices
		WHERE user_id = $1 AND is_default
	`

	voice, err := scanVoice(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrVoiceNotFound
		}
		return nil, MapError(err)
	}

	return voice, nil
}

// ListByUser implements store.VoiceStore.ListByUser.
func (s *PostgresVoiceStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SenderVoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, sender_name, voice_id, notes, is_default,
			created_at, updated_at
		FROM sender_voices
		WHERE user_id = $1
		ORDER BY lower(sender_name) ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query sender voices", "user_id", userID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	voices := []*domain.SenderVoice{}
	for rows.Next() {
		voice, err := scanVoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sender voice row: %w", err)
		}
		voices = append(voices, voice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sender voice rows: %w", err)
	}

	return voices, nil
}

// SetDefault implements store.VoiceStore.SetDefault. The clear and the set
// run as two statements, so the caller must wrap this in a transaction to
// keep the at-most-one-default invariant under concurrency.
func (s *PostgresVoiceStore) SetDefault(ctx context.Context, userID uuid.UUID, senderName string) error {
	clearQuery := `
		UPDATE sender_voices
		SET is_default = FALSE, updated_at = $1
		WHERE user_id = $2 AND is_default
	`
	if _, err := s.db.ExecContext(ctx, clearQuery, time.Now().UTC(), userID); err != nil {
		return MapError(err)
	}

	setQuery := `
		UPDATE sender_voices
		SET is_default = TRUE, updated_at = $1
		WHERE user_id = $2 AND lower(sender_name) = $3
	`
	result, err := s.db.ExecContext(ctx, setQuery,
		time.Now().UTC(), userID, domain.NormalizeSenderName(senderName))
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrVoiceNotFound)
}

// DeleteBySender implements store.VoiceStore.DeleteBySender.
// Returns store.ErrVoiceNotFound if no mapping exists.
func (s *PostgresVoiceStore) DeleteBySender(ctx context.Context, userID uuid.UUID, senderName string) error {
	query := `
		DELETE FROM sender_voices
		WHERE user_id = $1 AND lower(sender_name) = $2
	`

	result, err := s.db.ExecContext(ctx, query, userID, domain.NormalizeSenderName(senderName))
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrVoiceNotFound)
}

// WithTx implements store.VoiceStore.WithTx.
func (s *PostgresVoiceStore) WithTx(tx *sql.Tx) store.VoiceStore {
	return &PostgresVoiceStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanVoice reads one sender_voices row into a domain.SenderVoice.
func scanVoice(row rowScanner) (*domain.SenderVoice, error) {
	voice := &domain.SenderVoice{}
	var voiceID, notes sql.NullString

	err := row.Scan(
		&voice.ID,
		&voice.UserID,
		&voice.SenderName,
		&voiceID,
		&notes,
		&voice.IsDefault,
		&voice.CreatedAt,
		&voice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	voice.VoiceID = voiceID.String
	voice.Notes = notes.String
	return voice, nil
}
