package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tasksync-dev/tasksync/internal/adapter"
	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/store"
	"github.com/tasksync-dev/tasksync/internal/utils"
	"github.com/tasksync-dev/tasksync/models"
)

// syncEngine is the concrete implementation of SyncEngine. All mutations flow
// through it in a fixed order: durable queue first, local cache second, replay
// request last. That order is what makes the client safe to kill at any point;
// a mutation that reached the queue is never lost.
type syncEngine struct {
	tasks  store.TaskRepository
	queue  store.OperationQueue
	remote adapter.RemoteClient
	merger Reconciler
	events *Broadcaster
	uuid   *utils.UUIDGenerator
	logger *logger.Logger

	startupTimeout time.Duration

	// mu guards online and replaying.
	mu        sync.Mutex
	online    bool
	replaying bool

	pending *pendingIndex
	replayC chan struct{}
}

// NewSyncEngine wires a SyncEngine over the local storages and the remote
// client. Events are published to the given broadcaster. The engine starts
// offline and idle; call Bootstrap once, then Run in a background goroutine.
func NewSyncEngine(
	storages *store.ClientStorages,
	remote adapter.RemoteClient,
	events *Broadcaster,
	cfg config.ClientWorkers,
	log *logger.Logger,
) SyncEngine {
	startupTimeout := cfg.StartupSyncTimeout
	if startupTimeout <= 0 {
		startupTimeout = config.DefaultStartupSyncTimeout
	}

	return &syncEngine{
		tasks:          storages.Tasks,
		queue:          storages.Queue,
		remote:         remote,
		merger:         NewReconciler(),
		events:         events,
		uuid:           utils.NewUUIDGenerator(),
		logger:         log,
		startupTimeout: startupTimeout,
		pending:        newPendingIndex(),
		replayC:        make(chan struct{}, 1),
	}
}

// Bootstrap implements SyncEngine.
func (e *syncEngine) Bootstrap(ctx context.Context) error {
	ops, err := e.queue.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load pending operations: %w", err)
	}
	e.pending.rebuild(ops)

	e.logger.Info().
		Str("func", "syncEngine.Bootstrap").
		Int("pending", len(ops)).
		Msg("pending operation index rebuilt")

	fetchCtx, cancel := context.WithTimeout(ctx, e.startupTimeout)
	defer cancel()

	snapshot, err := e.remote.FetchTasks(fetchCtx)
	if err != nil {
		// Startup must not depend on the network: surface the failure and
		// continue with whatever the local cache holds.
		e.logger.Warn().Err(err).
			Str("func", "syncEngine.Bootstrap").
			Msg("startup fetch failed, continuing with local data")
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("startup fetch failed: %v", err)))
		return nil
	}

	if err = e.HandleSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("apply startup snapshot: %w", err)
	}

	return nil
}

// QueueSave implements SyncEngine.
func (e *syncEngine) QueueSave(ctx context.Context, task models.Task) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, ErrEmptyTaskTitle
	}

	now := time.Now()
	if task.ID == "" {
		task.ID = e.uuid.Generate()
		task.CreatedAt = now
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	if _, err := e.queue.Enqueue(ctx, models.OperationSave, task.ID, &task); err != nil {
		return models.Task{}, fmt.Errorf("enqueue save (id=%s): %w", task.ID, err)
	}
	e.pending.add(models.OperationSave, task.ID)

	if err := e.tasks.UpsertTask(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("apply save locally (id=%s): %w", task.ID, err)
	}

	if e.Online() {
		e.TriggerReplay()
	}

	return task, nil
}

// QueueDelete implements SyncEngine.
func (e *syncEngine) QueueDelete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyTaskID
	}

	if _, err := e.queue.Enqueue(ctx, models.OperationDelete, id, nil); err != nil {
		return fmt.Errorf("enqueue delete (id=%s): %w", id, err)
	}
	e.pending.add(models.OperationDelete, id)

	if err := e.tasks.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("apply delete locally (id=%s): %w", id, err)
	}

	if e.Online() {
		e.TriggerReplay()
	}

	return nil
}

// LocalTasks implements SyncEngine.
func (e *syncEngine) LocalTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return e.tasks.ListTasks(ctx, filter)
}

// PendingCount implements SyncEngine.
func (e *syncEngine) PendingCount(ctx context.Context) (int, error) {
	return e.queue.Count(ctx)
}

// SetOnline implements SyncEngine.
func (e *syncEngine) SetOnline(online bool) {
	e.mu.Lock()
	if e.online == online {
		e.mu.Unlock()
		return
	}
	e.online = online
	e.mu.Unlock()

	e.logger.Info().
		Str("func", "syncEngine.SetOnline").
		Str("network", string(models.NetworkStateOf(online))).
		Msg("network state changed")
	e.events.Publish(models.StatusChangedEvent(online))

	// Regaining connectivity is the moment to drain the backlog.
	if online {
		e.TriggerReplay()
	}
}

// Online implements SyncEngine.
func (e *syncEngine) Online() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.online
}

// HandleSnapshot implements SyncEngine.
func (e *syncEngine) HandleSnapshot(ctx context.Context, snapshot []models.Task) error {
	local, err := e.tasks.GetAllTasks(ctx)
	if err != nil {
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("load local tasks: %v", err)))
		return fmt.Errorf("load local tasks: %w", err)
	}

	// The pending index is read after the local cache: a mutation queued
	// mid-merge is then either visible in the index or absent from the local
	// slice, so the merge can never delete it.
	tombstones, queuedSaves := e.pending.snapshot()

	result, err := e.merger.Merge(ctx, local, snapshot, tombstones, queuedSaves)
	if err != nil {
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("merge snapshot: %v", err)))
		return fmt.Errorf("merge snapshot: %w", err)
	}

	if err = e.tasks.UpsertTasks(ctx, result.ToUpsert...); err != nil {
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("apply merged upserts: %v", err)))
		return fmt.Errorf("apply merged upserts: %w", err)
	}
	if err = e.tasks.DeleteTasks(ctx, result.ToDelete...); err != nil {
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("apply merged deletes: %v", err)))
		return fmt.Errorf("apply merged deletes: %w", err)
	}

	merged, err := e.tasks.GetAllTasks(ctx)
	if err != nil {
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("reload merged tasks: %v", err)))
		return fmt.Errorf("reload merged tasks: %w", err)
	}

	e.logger.Info().
		Str("func", "syncEngine.HandleSnapshot").
		Int("remote", len(snapshot)).
		Int("upserted", len(result.ToUpsert)).
		Int("deleted", len(result.ToDelete)).
		Msg("remote snapshot merged")

	e.events.Publish(models.TasksSyncedEvent(merged))
	return nil
}
