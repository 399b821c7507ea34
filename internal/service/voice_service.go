package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/platform/elevenlabs"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

// VoiceService manages the per-user mapping from sender names to
// speech-synthesis voices.
type VoiceService interface {
	// UpsertVoice creates or replaces the mapping for a sender name.
	UpsertVoice(ctx context.Context, userID uuid.UUID, senderName, voiceID, notes string) (*domain.SenderVoice, error)

	// ListVoices retrieves all of a user's voice mappings.
	ListVoices(ctx context.Context, userID uuid.UUID) ([]*domain.SenderVoice, error)

	// DeleteVoice removes the mapping for a sender name.
	// Returns ErrVoiceNotFound if no mapping exists.
	DeleteVoice(ctx context.Context, userID uuid.UUID, senderName string) error

	// SetDefaultVoice marks one mapping as the user's default, clearing any
	// previous default. Returns ErrVoiceNotFound if no mapping exists for
	// the sender.
	SetDefaultVoice(ctx context.Context, userID uuid.UUID, senderName string) error

	// ResolveVoice picks the voice ID to speak a sender's words with:
	// the sender's own mapping if one exists, else the user's default
	// mapping, else the built-in fallback voice. Never fails on a missing
	// mapping.
	ResolveVoice(ctx context.Context, userID uuid.UUID, senderName string) (string, error)
}

// voiceServiceImpl implements the VoiceService interface
type voiceServiceImpl struct {
	db         *sql.DB
	voiceStore store.VoiceStore
	logger     *slog.Logger
}

// NewVoiceService creates a new VoiceService.
func NewVoiceService(db *sql.DB, voiceStore store.VoiceStore, logger *slog.Logger) (VoiceService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if voiceStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "voiceStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &voiceServiceImpl{
		db:         db,
		voiceStore: voiceStore,
		logger:     logger.With("component", "voice_service"),
	}, nil
}

// UpsertVoice creates or replaces a sender's voice mapping.
func (s *voiceServiceImpl) UpsertVoice(
	ctx context.Context,
	userID uuid.UUID,
	senderName, voiceID, notes string,
) (*domain.SenderVoice, error) {
	voice, err := domain.NewSenderVoice(userID, senderName, voiceID, notes)
	if err != nil {
		return nil, WrapError("upsert_voice", "invalid voice mapping", err)
	}

	if err := s.voiceStore.Upsert(ctx, voice); err != nil {
		return nil, WrapError("upsert_voice", "failed to store voice mapping", err)
	}

	s.logger.Info("voice mapping saved",
		"user_id", userID,
		"sender", voice.NormalizedSenderName(),
		"voice_id", voiceID)

	return voice, nil
}

// ListVoices retrieves all of a user's voice mappings.
func (s *voiceServiceImpl) ListVoices(ctx context.Context, userID uuid.UUID) ([]*domain.SenderVoice, error) {
	voices, err := s.voiceStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapError("list_voices", "failed to list voice mappings", err)
	}
	return voices, nil
}

// DeleteVoice removes a sender's voice mapping.
func (s *voiceServiceImpl) DeleteVoice(ctx context.Context, userID uuid.UUID, senderName string) error {
	if err := s.voiceStore.DeleteBySender(ctx, userID, senderName); err != nil {
		if errors.Is(err, store.ErrVoiceNotFound) {
			return ErrVoiceNotFound
		}
		return WrapError("delete_voice", "failed to delete voice mapping", err)
	}
	return nil
}

// SetDefaultVoice clears the previous default and marks the sender's mapping
// as default inside one transaction.
func (s *voiceServiceImpl) SetDefaultVoice(ctx context.Context, userID uuid.UUID, senderName string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.voiceStore.WithTx(tx).SetDefault(ctx, userID, senderName)
	})
	if err != nil {
		if errors.Is(err, store.ErrVoiceNotFound) {
			return ErrVoiceNotFound
		}
		return WrapError("set_default_voice", "failed to set default voice", err)
	}
	return nil
}

// ResolveVoice walks the sender mapping, then the default mapping, then the
// fallback voice. Mappings with an empty voice ID also resolve to the
// fallback.
func (s *voiceServiceImpl) ResolveVoice(ctx context.Context, userID uuid.UUID, senderName string) (string, error) {
	if domain.NormalizeSenderName(senderName) != "" {
		voice, err := s.voiceStore.GetBySender(ctx, userID, senderName)
		switch {
		case err == nil:
			if voice.VoiceID != "" {
				return voice.VoiceID, nil
			}
			return elevenlabs.FallbackVoiceID, nil
		case !errors.Is(err, store.ErrVoiceNotFound):
			return "", WrapError("resolve_voice", "failed to look up sender voice", err)
		}
	}

	voice, err := s.voiceStore.GetDefault(ctx, userID)
	switch {
	case err == nil && voice.VoiceID != "":
		return voice.VoiceID, nil
	case err != nil && !errors.Is(err, store.ErrVoiceNotFound):
		return "", WrapError("resolve_voice", "failed to look up default voice", err)
	}

	return elevenlabs.FallbackVoiceID, nil
}
