package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/extraction"
	"github.com/seedling-labs/gratitude-api/internal/store"
	"github.com/seedling-labs/gratitude-api/internal/task"
)

// TaskRunner defines the interface for submitting background tasks
type TaskRunner interface {
	// Submit adds a task to the processing queue
	Submit(ctx context.Context, task task.Task) error
}

// MemoryUpload carries the attributes of a new memory upload.
type MemoryUpload struct {
	Text         string
	ImageURL     string
	SourceType   domain.MemorySourceType
	SenderName   string
	Occasion     string
	DateReceived *time.Time
}

// MemoryService provides memory-related operations: upload, lookup, and
// the background extraction pipeline.
type MemoryService interface {
	// CreateMemoryAndEnqueueExtraction saves a new memory and queues the
	// background task that derives gratitude entries from it.
	CreateMemoryAndEnqueueExtraction(
		ctx context.Context,
		userID uuid.UUID,
		upload MemoryUpload,
	) (*domain.Memory, error)

	// GetMemory retrieves a memory by its ID on behalf of a user.
	// Returns ErrNotOwned if the memory belongs to someone else.
	GetMemory(ctx context.Context, userID, memoryID uuid.UUID) (*domain.Memory, error)

	// ListMemories retrieves a user's memories, optionally filtered by a
	// search term over sender, occasion and text.
	ListMemories(ctx context.Context, userID uuid.UUID, search string) ([]*domain.Memory, error)

	// ListSenders returns the distinct sender names across a user's
	// memories.
	ListSenders(ctx context.Context, userID uuid.UUID) ([]string, error)

	// ProcessMemory runs extraction for one memory: derive entries from
	// its text, persist them atomically, and mark the memory processed.
	// Implements task.MemoryProcessor.
	ProcessMemory(ctx context.Context, memoryID uuid.UUID) error
}

// memoryServiceImpl implements the MemoryService interface
type memoryServiceImpl struct {
	db          *sql.DB
	memoryStore store.MemoryStore
	entryStore  store.EntryStore
	extractor   extraction.Extractor
	taskRunner  TaskRunner
	logger      *slog.Logger
}

// Ensure memoryServiceImpl satisfies the task boundary it feeds.
var _ task.MemoryProcessor = (*memoryServiceImpl)(nil)

// NewMemoryService creates a new MemoryService.
// It returns an error if any of the required dependencies are nil.
func NewMemoryService(
	db *sql.DB,
	memoryStore store.MemoryStore,
	entryStore store.EntryStore,
	extractor extraction.Extractor,
	taskRunner TaskRunner,
	logger *slog.Logger,
) (MemoryService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if memoryStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "memoryStore cannot be nil"}
	}
	if entryStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "entryStore cannot be nil"}
	}
	if extractor == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "extractor cannot be nil"}
	}
	if taskRunner == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "taskRunner cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &memoryServiceImpl{
		db:          db,
		memoryStore: memoryStore,
		entryStore:  entryStore,
		extractor:   extractor,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "memory_service"),
	}, nil
}

// CreateMemoryAndEnqueueExtraction saves the memory and queues extraction.
// The memory is committed before the task is submitted, so a queue failure
// leaves an unprocessed memory rather than a dangling task.
func (s *memoryServiceImpl) CreateMemoryAndEnqueueExtraction(
	ctx context.Context,
	userID uuid.UUID,
	upload MemoryUpload,
) (*domain.Memory, error) {
	memory, err := domain.NewMemory(userID, upload.Text, upload.SourceType)
	if err != nil {
		return nil, WrapError("create_memory", "invalid memory", err)
	}
	memory.ImageURL = upload.ImageURL
	memory.SenderName = upload.SenderName
	memory.Occasion = upload.Occasion
	memory.DateReceived = upload.DateReceived

	if err := s.memoryStore.Create(ctx, memory); err != nil {
		s.logger.Error("failed to save memory",
			"error", err,
			"user_id", userID)
		return nil, WrapError("create_memory", "failed to save memory", err)
	}

	s.logger.Info("memory created",
		"memory_id", memory.ID,
		"user_id", userID,
		"source_type", memory.SourceType)

	extractionTask, err := task.NewMemoryExtractionTask(memory.ID, s, s.logger)
	if err != nil {
		return nil, WrapError("create_memory", "failed to build extraction task", err)
	}

	if err := s.taskRunner.Submit(ctx, extractionTask); err != nil {
		s.logger.Error("failed to enqueue extraction task",
			"error", err,
			"memory_id", memory.ID)
		return nil, WrapError("create_memory", "failed to enqueue extraction task", err)
	}

	return memory, nil
}

// GetMemory retrieves a memory, enforcing ownership.
func (s *memoryServiceImpl) GetMemory(ctx context.Context, userID, memoryID uuid.UUID) (*domain.Memory, error) {
	memory, err := s.memoryStore.GetByID(ctx, memoryID)
	if err != nil {
		if errors.Is(err, store.ErrMemoryNotFound) {
			return nil, ErrMemoryNotFound
		}
		return nil, WrapError("get_memory", "failed to retrieve memory", err)
	}

	if memory.UserID != userID {
		return nil, ErrNotOwned
	}

	return memory, nil
}

// ListMemories retrieves a user's memories.
func (s *memoryServiceImpl) ListMemories(ctx context.Context, userID uuid.UUID, search string) ([]*domain.Memory, error) {
	memories, err := s.memoryStore.ListByUser(ctx, userID, search)
	if err != nil {
		return nil, WrapError("list_memories", "failed to list memories", err)
	}
	return memories, nil
}

// ListSenders returns the distinct sender names across a user's memories.
func (s *memoryServiceImpl) ListSenders(ctx context.Context, userID uuid.UUID) ([]string, error) {
	senders, err := s.memoryStore.ListSenders(ctx, userID)
	if err != nil {
		return nil, WrapError("list_senders", "failed to list senders", err)
	}
	return senders, nil
}

// ProcessMemory runs the extraction pipeline for one memory. Extraction
// failures are absorbed: the normalizer falls back to a single synthesized
// entry, so an upload always yields something surfaceable.
func (s *memoryServiceImpl) ProcessMemory(ctx context.Context, memoryID uuid.UUID) error {
	memory, err := s.memoryStore.GetByID(ctx, memoryID)
	if err != nil {
		if errors.Is(err, store.ErrMemoryNotFound) {
			return ErrMemoryNotFound
		}
		return WrapError("process_memory", "failed to load memory", err)
	}

	if memory.Processed {
		s.logger.Info("memory already processed, skipping", "memory_id", memoryID)
		return nil
	}

	meta := extraction.Metadata{
		SenderName: memory.SenderName,
		Occasion:   memory.Occasion,
	}
	if memory.DateReceived != nil {
		meta.DateReceived = memory.DateReceived.Format("2006-01-02")
	}

	raw, err := s.extractor.ExtractEntries(ctx, memory.ExtractedText, meta)
	if err != nil {
		s.logger.Warn("extraction failed, falling back to synthesized entry",
			"memory_id", memoryID,
			"error", err)
		raw = nil
	}

	entries, err := extraction.Normalize(raw, memory.ExtractedText, meta, memory.UserID, memory.ID, time.Now().UTC())
	if err != nil {
		return WrapError("process_memory", "failed to normalize extracted entries", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.entryStore.WithTx(tx).CreateBatch(ctx, entries); err != nil {
			return fmt.Errorf("failed to save entries: %w", err)
		}
		if err := s.memoryStore.WithTx(tx).MarkProcessed(ctx, memoryID); err != nil {
			return fmt.Errorf("failed to mark memory processed: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to persist extraction results",
			"memory_id", memoryID,
			"error", err)
		return WrapError("process_memory", "failed to persist extraction results", err)
	}

	s.logger.Info("memory processed",
		"memory_id", memoryID,
		"entry_count", len(entries))
	return nil
}
