package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a queued task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeMemoryExtraction derives gratitude entries from an uploaded
	// memory's text.
	TaskTypeMemoryExtraction = "memory_extraction"
)

// Task is one unit of background work. Implementations carry their own
// payload and know how to run themselves.
type Task interface {
	ID() uuid.UUID

	// Type identifies the kind of work, e.g. TaskTypeMemoryExtraction.
	Type() string

	// Payload is the serialized task data persisted alongside the task.
	Payload() []byte

	Status() TaskStatus

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}

// TaskStore persists tasks so queued work survives a restart.
type TaskStore interface {
	// SaveTask writes a new task in its current status.
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus moves a task to the given status, recording an
	// error message for failures.
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks returns every task still waiting to run.
	GetPendingTasks(ctx context.Context) ([]Task, error)

	// GetProcessingTasks retrieves tasks with "processing" status.
	// If olderThan is non-zero, only returns tasks that have been in this
	// state longer than the specified duration.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error)
}
