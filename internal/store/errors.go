package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTaskNotFound is returned when a query targets a task that does not
	// exist in the local database.
	ErrTaskNotFound = errors.New("task was not found")

	// ErrTaskNotSaved is returned when an upsert completes without error but
	// the number of affected rows is zero, indicating that nothing was
	// actually persisted.
	ErrTaskNotSaved = errors.New("task was not saved")

	// ErrOperationNotFound is returned when a removal targets a queue entry
	// (identified by its sequence number) that is not present. Queue entries
	// are removed exactly once, after a confirmed replay.
	ErrOperationNotFound = errors.New("queued operation was not found")

	// ErrOperationNotEnqueued is returned when an INSERT into the pending
	// operations queue completes without error but affects zero rows. The
	// caller must treat the mutation as not queued and surface the failure.
	ErrOperationNotEnqueued = errors.New("operation was not enqueued")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
