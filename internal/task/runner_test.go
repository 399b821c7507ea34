package task

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryTaskStore is an in-memory TaskStore for runner tests.
type memoryTaskStore struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]TaskStatus
	pending  []Task
}

func newMemoryTaskStore() *memoryTaskStore {
	return &memoryTaskStore{statuses: make(map[uuid.UUID]TaskStatus)}
}

func (s *memoryTaskStore) SaveTask(ctx context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[t.ID()] = t.Status()
	return nil
}

func (s *memoryTaskStore) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[taskID] = status
	return nil
}

func (s *memoryTaskStore) GetPendingTasks(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, nil
}

func (s *memoryTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error) {
	return nil, nil
}

func (s *memoryTaskStore) statusOf(id uuid.UUID) TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[id]
}

// funcTask is a Task driven by a function, for testing the runner.
type funcTask struct {
	id   uuid.UUID
	fn   func(ctx context.Context) error
	done chan struct{}
}

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), fn: fn, done: make(chan struct{})}
}

func (t *funcTask) ID() uuid.UUID      { return t.id }
func (t *funcTask) Type() string       { return "test_task" }
func (t *funcTask) Payload() []byte    { return []byte("{}") }
func (t *funcTask) Status() TaskStatus { return TaskStatusPending }

func (t *funcTask) Execute(ctx context.Context) error {
	defer close(t.done)
	if t.fn != nil {
		return t.fn(ctx)
	}
	return nil
}

func testRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            1,
		QueueSize:              10,
		StuckTaskAge:           time.Minute,
		StuckTaskCheckInterval: time.Hour, // keep the monitor quiet during tests
	}
}

func waitDone(t *testing.T, tk *funcTask) {
	t.Helper()
	select {
	case <-tk.done:
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed in time")
	}
}

func TestRunnerExecutesSubmittedTask(t *testing.T) {
	store := newMemoryTaskStore()
	runner := NewTaskRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	tk := newFuncTask(nil)
	require.NoError(t, runner.Submit(context.Background(), tk))

	waitDone(t, tk)
	assert.Eventually(t, func() bool {
		return store.statusOf(tk.ID()) == TaskStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunnerMarksFailedTask(t *testing.T) {
	store := newMemoryTaskStore()
	runner := NewTaskRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	tk := newFuncTask(func(ctx context.Context) error {
		return assert.AnError
	})
	require.NoError(t, runner.Submit(context.Background(), tk))

	waitDone(t, tk)
	assert.Eventually(t, func() bool {
		return store.statusOf(tk.ID()) == TaskStatusFailed
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunnerRecoversPendingTasks(t *testing.T) {
	store := newMemoryTaskStore()
	tk := newFuncTask(nil)
	store.pending = []Task{tk}

	runner := NewTaskRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	waitDone(t, tk)
}

func TestRunnerRejectsWhenQueueFull(t *testing.T) {
	store := newMemoryTaskStore()
	cfg := testRunnerConfig()
	cfg.QueueSize = 1
	runner := NewTaskRunner(store, cfg, slog.Default())
	// Not started: nothing drains the queue.

	require.NoError(t, runner.Submit(context.Background(), newFuncTask(nil)))
	err := runner.Submit(context.Background(), newFuncTask(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}
