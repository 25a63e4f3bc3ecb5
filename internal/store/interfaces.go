package store

import (
	"context"

	"github.com/tasksync-dev/tasksync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TaskRepository is the low-level local task cache.
type TaskRepository interface {
	UpsertTask(ctx context.Context, task models.Task) error
	UpsertTasks(ctx context.Context, tasks ...models.Task) error
	GetTask(ctx context.Context, id string) (models.Task, error)
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteTasks(ctx context.Context, ids ...string) error
}

// OperationQueue is the durable FIFO of mutations awaiting replay against the
// remote. Entries survive restarts; ordering follows the assigned sequence
// numbers.
type OperationQueue interface {
	// Enqueue appends an operation and returns its assigned sequence number.
	// For save operations payload carries the full record snapshot; for
	// delete operations payload is nil.
	Enqueue(ctx context.Context, kind models.OperationKind, recordID string, payload *models.Task) (int64, error)

	// ListAll returns every pending operation in insertion order.
	ListAll(ctx context.Context) ([]models.PendingOperation, error)

	// Remove deletes the entry with the given sequence number.
	Remove(ctx context.Context, seq int64) error

	// Clear removes every pending entry.
	Clear(ctx context.Context) error

	// Count reports the number of pending entries.
	Count(ctx context.Context) (int, error)
}
