package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilProcessor = errors.New("memory processor cannot be nil")
	ErrNilTaskID    = errors.New("memory ID cannot be empty")
)

// MemoryProcessor runs the extraction pipeline for one memory: derive
// gratitude entries from its text, persist them, and flip the processed
// flag. Implemented by the memory service.
type MemoryProcessor interface {
	ProcessMemory(ctx context.Context, memoryID uuid.UUID) error
}

// extractionPayload represents the serialized data stored with the task
type extractionPayload struct {
	MemoryID uuid.UUID `json:"memory_id"`
}

// MemoryExtractionTask implements the Task interface for deriving
// gratitude entries from an uploaded memory.
type MemoryExtractionTask struct {
	id        uuid.UUID
	memoryID  uuid.UUID
	processor MemoryProcessor
	logger    *slog.Logger
	status    TaskStatus
}

// NewMemoryExtractionTask creates a new extraction task for the given memory.
func NewMemoryExtractionTask(
	memoryID uuid.UUID,
	processor MemoryProcessor,
	logger *slog.Logger,
) (*MemoryExtractionTask, error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if memoryID == uuid.Nil {
		return nil, ErrNilTaskID
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryExtractionTask{
		id:        uuid.New(),
		memoryID:  memoryID,
		processor: processor,
		logger:    logger.With("task_type", TaskTypeMemoryExtraction, "memory_id", memoryID),
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *MemoryExtractionTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *MemoryExtractionTask) Type() string {
	return TaskTypeMemoryExtraction
}

// Payload returns the serialized task data
func (t *MemoryExtractionTask) Payload() []byte {
	payload := extractionPayload{MemoryID: t.memoryID}
	data, err := json.Marshal(payload)
	if err != nil {
		// Marshaling a single UUID cannot fail; guard anyway.
		t.logger.Error("failed to marshal task payload", "error", err)
		return nil
	}
	return data
}

// Status returns the current task status
func (t *MemoryExtractionTask) Status() TaskStatus {
	return t.status
}

// Execute runs the extraction pipeline for the memory.
func (t *MemoryExtractionTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting memory extraction")

	if err := t.processor.ProcessMemory(ctx, t.memoryID); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to process memory %s: %w", t.memoryID, err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("memory extraction completed")
	return nil
}
