package models

import "time"

// Task is the synchronized record: the unit of data shared between the
// local SQLite cache and the remote authoritative store.
type Task struct {
	// ID is the globally unique task identifier (UUID), assigned once at
	// creation and never reused.
	ID string `json:"id"`

	// Title is the short user-visible description of the task.
	Title string `json:"title"`

	// Notes holds optional free-form details.
	Notes string `json:"notes,omitempty"`

	// Done reports whether the task has been completed.
	Done bool `json:"done"`

	// CreatedAt is the timestamp of the original creation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed by the owning layer on every mutation and is
	// strictly non-decreasing across the task's lifetime. It is the sole
	// signal the reconciler trusts when resolving conflicts.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskFilter narrows a task listing. Zero-value fields are ignored, so an
// empty filter matches every task.
type TaskFilter struct {
	// Done, when set, keeps only tasks with a matching completion state.
	Done *bool

	// TitleContains, when non-empty, keeps only tasks whose title contains
	// the given substring.
	TitleContains string

	// UpdatedAfter, when set, keeps only tasks modified strictly after the
	// given instant.
	UpdatedAfter *time.Time
}
