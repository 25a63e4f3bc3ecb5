package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasksync-dev/tasksync/internal/adapter"
	"github.com/tasksync-dev/tasksync/models"
)

// TriggerReplay implements SyncEngine. The request channel holds a single
// token: a trigger arriving while one is already pending collapses into it,
// and a trigger arriving mid-pass schedules exactly one follow-up pass.
func (e *syncEngine) TriggerReplay() {
	select {
	case e.replayC <- struct{}{}:
	default:
	}
}

// Run implements SyncEngine.
func (e *syncEngine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.replayC:
			e.runReplayPass(ctx)
		}
	}
}

// runReplayPass drains a snapshot of the durable queue against the remote, in
// insertion order. Confirmed operations are removed from the queue; a failed
// operation stays queued and the pass moves on, so one unreachable record
// cannot block the rest of the backlog.
func (e *syncEngine) runReplayPass(ctx context.Context) {
	e.mu.Lock()
	if e.replaying || !e.online {
		e.mu.Unlock()
		return
	}
	e.replaying = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.replaying = false
		e.mu.Unlock()
	}()

	e.events.Publish(models.SyncStartedEvent())

	ops, err := e.queue.ListAll(ctx)
	if err != nil {
		e.logger.Err(err).
			Str("func", "syncEngine.runReplayPass").
			Msg("failed to list pending operations")
		e.events.Publish(models.SyncErrorEvent(fmt.Sprintf("list pending operations: %v", err)))
		return
	}

	var firstErr error
	confirmed := 0

	for _, op := range ops {
		if ctx.Err() != nil {
			break
		}

		if pushErr := e.pushOperation(ctx, op); pushErr != nil {
			e.logger.Warn().Err(pushErr).
				Str("func", "syncEngine.runReplayPass").
				Int64("seq", op.Seq).
				Str("id", op.RecordID).
				Msg("replay of queued operation failed, leaving it queued")
			if firstErr == nil {
				firstErr = pushErr
			}
			continue
		}

		if removeErr := e.queue.Remove(ctx, op.Seq); removeErr != nil {
			if firstErr == nil {
				firstErr = removeErr
			}
			continue
		}
		e.pending.remove(op.Kind, op.RecordID)
		confirmed++
	}

	if firstErr != nil {
		e.events.Publish(models.SyncErrorEvent(firstErr.Error()))
	}

	remaining, countErr := e.queue.Count(ctx)
	if countErr != nil {
		remaining = len(ops) - confirmed
	}

	e.logger.Info().
		Str("func", "syncEngine.runReplayPass").
		Int("confirmed", confirmed).
		Int("remaining", remaining).
		Msg("replay pass finished")

	e.events.Publish(models.SyncCompletedEvent(remaining))
}

// pushOperation sends one queued operation to the remote.
func (e *syncEngine) pushOperation(ctx context.Context, op models.PendingOperation) error {
	switch op.Kind {
	case models.OperationSave:
		if op.Payload == nil {
			return fmt.Errorf("queued save has no payload (seq=%d, id=%s)", op.Seq, op.RecordID)
		}
		if err := e.remote.WriteTask(ctx, *op.Payload); err != nil {
			return fmt.Errorf("replay save (id=%s): %w", op.RecordID, err)
		}

	case models.OperationDelete:
		err := e.remote.DeleteTask(ctx, op.RecordID)
		if err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return fmt.Errorf("replay delete (id=%s): %w", op.RecordID, err)
		}
		// ErrNotFound: the record is already gone remotely, which is exactly
		// the state the delete was meant to reach.

	default:
		return fmt.Errorf("unknown queued operation kind %q (seq=%d)", op.Kind, op.Seq)
	}

	return nil
}
