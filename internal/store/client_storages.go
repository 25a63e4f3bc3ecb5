package store

import (
	"context"
	"fmt"

	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value that
// can be passed around the service layer. Both repositories share one SQLite
// database: the task cache and the pending operation queue live in the same
// file so a queued mutation and its local effect persist together.
type ClientStorages struct {
	// Tasks is the SQLite-backed local cache of task records.
	Tasks TaskRepository

	// Queue is the durable FIFO of operations awaiting replay.
	Queue OperationQueue
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.Path,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Tasks: NewTaskRepository(db, logger),
		Queue: NewOperationQueue(db, logger),
	}, nil
}
