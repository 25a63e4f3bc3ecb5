package service

import (
	"context"

	"github.com/tasksync-dev/tasksync/models"
)

// Reconciler resolves a full remote snapshot against the local task cache.
// Implementations must be pure: no storage access, no side effects, so the
// outcome is reproducible from the inputs alone.
type Reconciler interface {
	// Merge compares the local cache with the remote snapshot and returns the
	// two change sets the caller must apply locally. Conflicts are resolved
	// last-writer-wins on UpdatedAt, with ties kept local.
	//
	// tombstones holds ids with a queued, unconfirmed delete: those ids are
	// left untouched no matter what the snapshot says. queuedSaves holds ids
	// with a queued, unconfirmed save: their absence from the snapshot means
	// "not uploaded yet", never "deleted remotely".
	//
	// The returned sets are disjoint by id. ctx cancellation aborts the merge.
	Merge(ctx context.Context, local, remote []models.Task, tombstones, queuedSaves models.IDSet) (models.MergeResult, error)
}

// SyncEngine coordinates local mutations, the durable operation queue, and
// replay against the remote. It is the only writer of the local task cache.
type SyncEngine interface {
	// Bootstrap prepares the engine for use: it rebuilds the pending-operation
	// index from the durable queue, then attempts a time-boxed fetch of the
	// remote snapshot. A failed fetch is not an error: the engine falls back
	// to the local cache and catches up on the next snapshot.
	Bootstrap(ctx context.Context) error

	// QueueSave records a create-or-update. The operation is appended to the
	// durable queue first, then applied to the local cache, then a replay is
	// requested if the engine is online. Tasks without an ID are assigned one;
	// UpdatedAt is always stamped with the current time. Returns the stored
	// task.
	//
	// If the queue append fails the mutation is rejected as a whole and the
	// local cache is left untouched.
	QueueSave(ctx context.Context, task models.Task) (models.Task, error)

	// QueueDelete records a deletion of the task with the given id, following
	// the same order as QueueSave: durable queue first, local cache second,
	// replay request last. Deleting an id absent from the local cache is not
	// an error.
	QueueDelete(ctx context.Context, id string) error

	// LocalTasks lists tasks from the local cache, narrowed by filter.
	LocalTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	// PendingCount reports how many queued operations await confirmation.
	PendingCount(ctx context.Context) (int, error)

	// SetOnline feeds a network state observation into the engine. Each
	// transition is published exactly once as a status-changed event; a
	// transition to online also requests a replay.
	SetOnline(online bool)

	// Online reports the engine's current network state.
	Online() bool

	// HandleSnapshot merges a pushed remote snapshot into the local cache and
	// publishes a tasks-synced event carrying the resulting local set.
	HandleSnapshot(ctx context.Context, snapshot []models.Task) error

	// TriggerReplay requests one replay pass without blocking. Requests made
	// while a pass is pending or running coalesce into a single follow-up.
	TriggerReplay()

	// Run services replay requests until ctx is cancelled. At most one pass
	// runs at a time, process-wide.
	Run(ctx context.Context)
}

// AppInfoService exposes application metadata to the user interface.
type AppInfoService interface {
	// GetAppVersion returns the configured application version string.
	GetAppVersion(ctx context.Context) string
}
