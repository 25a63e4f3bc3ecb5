package models

// EventKind names a lifecycle event published by the sync engine.
type EventKind string

const (
	EventSyncStarted   EventKind = "sync-started"
	EventSyncCompleted EventKind = "sync-completed"
	EventSyncError     EventKind = "sync-error"
	EventStatusChanged EventKind = "status-changed"
	EventTasksSynced   EventKind = "tasks-synced"
)

// Event carries one lifecycle notification to subscribers (the status
// indicator, tests). Only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind `json:"kind"`

	// Online accompanies EventStatusChanged.
	Online bool `json:"online,omitempty"`

	// Remaining accompanies EventSyncCompleted: queue entries still
	// unconfirmed after the pass.
	Remaining int `json:"remaining,omitempty"`

	// Message accompanies EventSyncError.
	Message string `json:"message,omitempty"`

	// Records accompanies EventTasksSynced: the full local set after a
	// snapshot merge was applied.
	Records []Task `json:"records,omitempty"`
}

// SyncStartedEvent marks the beginning of a replay pass.
func SyncStartedEvent() Event {
	return Event{Kind: EventSyncStarted}
}

// SyncCompletedEvent marks the end of a replay pass with the number of
// entries still queued.
func SyncCompletedEvent(remaining int) Event {
	return Event{Kind: EventSyncCompleted, Remaining: remaining}
}

// SyncErrorEvent reports a transient sync failure.
func SyncErrorEvent(message string) Event {
	return Event{Kind: EventSyncError, Message: message}
}

// StatusChangedEvent reports a network state transition.
func StatusChangedEvent(online bool) Event {
	return Event{Kind: EventStatusChanged, Online: online}
}

// TasksSyncedEvent reports that a remote snapshot was merged and carries
// the resulting local record set.
func TasksSyncedEvent(records []Task) Event {
	return Event{Kind: EventTasksSynced, Records: records}
}
