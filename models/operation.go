package models

import "time"

// OperationKind classifies a pending mutation.
type OperationKind string

const (
	// OperationSave is a full-record upsert against the remote.
	OperationSave OperationKind = "save"
	// OperationDelete removes the record from the remote by id.
	OperationDelete OperationKind = "delete"
)

// PendingOperation is one durable queue entry: a mutation recorded while
// the remote was unreachable (or still unconfirmed). Entries are owned
// exclusively by the operation queue; the engine reads and removes them
// but never reorders.
type PendingOperation struct {
	// Seq is assigned by the queue on enqueue: unique and increasing,
	// so insertion order is total.
	Seq int64 `json:"seq"`

	// Kind tells whether the entry is a save or a delete.
	Kind OperationKind `json:"kind"`

	// RecordID is the id of the task the operation applies to.
	RecordID string `json:"record_id"`

	// Payload is the full task snapshot frozen at enqueue time for saves,
	// nil for deletes. Later local mutations never change a queued entry.
	Payload *Task `json:"payload,omitempty"`

	// EnqueuedAt is the wall-clock time the entry was recorded.
	EnqueuedAt time.Time `json:"enqueued_at"`
}
