package service

import (
	"context"

	"github.com/tasksync-dev/tasksync/models"
)

// reconciler is the concrete implementation of Reconciler. It performs a
// purely in-memory comparison of the local and remote task slices; no storage
// layer or logger is required because the operation is stateless and produces
// no side effects.
type reconciler struct{}

// NewReconciler constructs a Reconciler ready for use. Because Merge is a
// stateless, in-memory operation, no dependencies are needed.
func NewReconciler() Reconciler {
	return &reconciler{}
}

// Merge implements Reconciler.
//
// It builds two O(1) lookup indexes from the input slices, then makes two
// linear passes to classify every record into exactly one outcome:
//
//   - Pass 1 (over remote): handles records present in the snapshot, whether
//     or not they also exist locally.
//   - Pass 2 (over local): catches records that exist only locally and were
//     therefore invisible in pass 1.
//
// Ids in tombstones are skipped in both passes: a queued delete outranks
// anything the snapshot says about the record until the delete is confirmed.
//
// ctx cancellation is checked at the start of each iteration so that callers
// can abort early when operating on large datasets.
func (r *reconciler) Merge(
	ctx context.Context,
	local, remote []models.Task,
	tombstones, queuedSaves models.IDSet,
) (models.MergeResult, error) {
	var result models.MergeResult

	// Build O(1) lookup indexes keyed by task ID.
	localIndex := make(map[string]models.Task, len(local))
	for _, lt := range local {
		localIndex[lt.ID] = lt
	}

	remoteIndex := make(map[string]struct{}, len(remote))
	for _, rt := range remote {
		remoteIndex[rt.ID] = struct{}{}
	}

	// ── Pass 1: iterate over remote records ─────────────────────────────────
	for _, rt := range remote {
		if err := ctx.Err(); err != nil {
			return models.MergeResult{}, err
		}

		if tombstones.Has(rt.ID) {
			// The snapshot predates our queued delete → do not resurrect.
			continue
		}

		lt, existsLocally := localIndex[rt.ID]

		if !existsLocally {
			// Remote has a record the local cache has never seen → take it.
			result.ToUpsert = append(result.ToUpsert, rt)
			continue
		}

		if rt.UpdatedAt.After(lt.UpdatedAt) {
			// Remote copy is strictly newer → it wins.
			result.ToUpsert = append(result.ToUpsert, rt)
		}
		// rt.UpdatedAt <= lt.UpdatedAt: the local copy is newer, or the two
		// are tied. Ties keep the local copy so an unconfirmed local edit is
		// never clobbered by its own echo.
	}

	// ── Pass 2: find local-only records (absent from the snapshot) ───────────
	for _, lt := range local {
		if err := ctx.Err(); err != nil {
			return models.MergeResult{}, err
		}

		if _, existsRemotely := remoteIndex[lt.ID]; existsRemotely {
			// Already handled in pass 1.
			continue
		}

		if tombstones.Has(lt.ID) {
			// A queued delete owns this id; the local copy (if any) is removed
			// by the delete itself, not by the merge.
			continue
		}

		if queuedSaves.Has(lt.ID) {
			// Created or edited locally and not pushed yet: the snapshot
			// cannot know about it → keep it.
			continue
		}

		// The authoritative snapshot no longer contains this record → it was
		// deleted elsewhere, remove the local copy.
		result.ToDelete = append(result.ToDelete, lt.ID)
	}

	return result, nil
}
