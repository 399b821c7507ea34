package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/platform/logger"
	"github.com/seedling-labs/gratitude-api/internal/store"
	"github.com/seedling-labs/gratitude-api/internal/task"
)

// PostgresTaskStore implements the task.TaskStore interface using PostgreSQL.
// When a MemoryProcessor is attached, recovered extraction tasks are rebuilt
// as executable tasks rather than inert rows.
type PostgresTaskStore struct {
	db        store.DBTX
	processor task.MemoryProcessor
}

// NewPostgresTaskStore creates a new PostgresTaskStore
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{
		db: db,
	}
}

// SetProcessor attaches the memory processor used to rebuild recovered
// extraction tasks. Set after service wiring; the store is created before
// the services that depend on it.
func (s *PostgresTaskStore) SetProcessor(p task.MemoryProcessor) {
	s.processor = p
}

// SaveTask persists a task to the database
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, query,
		t.ID(),
		t.Type(),
		t.Payload(),
		t.Status(),
		now,
		now,
	)
	if err != nil {
		log.Error("failed to save task",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		return fmt.Errorf("failed to save task to database: %w", err)
	}

	return nil
}

// UpdateTaskStatus updates the status of a task in the database
func (s *PostgresTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		status,
		errorMsg,
		time.Now().UTC(),
		taskID,
	)
	if err != nil {
		log.Error("failed to update task status",
			"task_id", taskID,
			"status", status,
			"error", err)
		return fmt.Errorf("failed to update task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Warn("no task found with ID to update status", "task_id", taskID)
		return nil // Task not found, treat as no-op
	}

	return nil
}

// GetPendingTasks retrieves all tasks with "pending" status
func (s *PostgresTaskStore) GetPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusPending, 0)
}

// GetProcessingTasks retrieves tasks with "processing" status
func (s *PostgresTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusProcessing, olderThan)
}

// getTasksByStatus is a helper method to get tasks by status with optional age filter
func (s *PostgresTaskStore) getTasksByStatus(
	ctx context.Context,
	status task.TaskStatus,
	olderThan time.Duration,
) ([]task.Task, error) {
	log := logger.FromContext(ctx)

	var query string
	var args []interface{}

	if olderThan > 0 {
		query = `
			SELECT id, type, payload, status, error_message, created_at, updated_at
			FROM tasks
			WHERE status = $1 AND updated_at < $2
			ORDER BY created_at ASC
		`
		args = []interface{}{status, time.Now().UTC().Add(-olderThan)}
	} else {
		query = `
			SELECT id, type, payload, status, error_message, created_at, updated_at
			FROM tasks
			WHERE status = $1
			ORDER BY created_at ASC
		`
		args = []interface{}{status}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks by status", "status", status, "error", err)
		return nil, fmt.Errorf("failed to query tasks by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		var id uuid.UUID
		var taskType string
		var payload []byte
		var taskStatus task.TaskStatus
		var errorMessage sql.NullString
		var createdAt, updatedAt time.Time

		if err := rows.Scan(&id, &taskType, &payload, &taskStatus, &errorMessage, &createdAt, &updatedAt); err != nil {
			log.Error("failed to scan task row", "status", status, "error", err)
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}

		t, err := s.rebuildTask(id, taskType, payload, taskStatus)
		if err != nil {
			log.Warn("could not rebuild recovered task, keeping inert record",
				"task_id", id,
				"task_type", taskType,
				"error", err)
			t = &recoveredTask{id: id, taskType: taskType, payload: payload, status: taskStatus}
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// rebuildTask reattaches execution logic to a persisted task record.
func (s *PostgresTaskStore) rebuildTask(
	id uuid.UUID,
	taskType string,
	payload []byte,
	status task.TaskStatus,
) (task.Task, error) {
	switch taskType {
	case task.TaskTypeMemoryExtraction:
		if s.processor == nil {
			return nil, errors.New("no memory processor attached")
		}

		var p struct {
			MemoryID uuid.UUID `json:"memory_id"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extraction payload: %w", err)
		}

		return &recoveredTask{
			id:       id,
			taskType: taskType,
			payload:  payload,
			status:   status,
			executeFn: func(ctx context.Context) error {
				return s.processor.ProcessMemory(ctx, p.MemoryID)
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}
}

// recoveredTask implements the task.Task interface for tasks loaded from
// the database. Without an executeFn it fails on execution, which marks the
// row failed instead of silently dropping it.
type recoveredTask struct {
	id        uuid.UUID
	taskType  string
	payload   []byte
	status    task.TaskStatus
	executeFn func(ctx context.Context) error
}

func (t *recoveredTask) ID() uuid.UUID { return t.id }

func (t *recoveredTask) Type() string { return t.taskType }

func (t *recoveredTask) Payload() []byte { return t.payload }

func (t *recoveredTask) Status() task.TaskStatus { return t.status }

func (t *recoveredTask) Execute(ctx context.Context) error {
	if t.executeFn != nil {
		return t.executeFn(ctx)
	}
	return errors.New("no execution function defined for recovered task")
}
