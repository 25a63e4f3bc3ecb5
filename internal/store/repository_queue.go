package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

type operationQueue struct {
	*DB
	logger *logger.Logger
}

func NewOperationQueue(db *DB, logger *logger.Logger) OperationQueue {
	return &operationQueue{
		DB:     db,
		logger: logger,
	}
}

func (q *operationQueue) Enqueue(ctx context.Context, kind models.OperationKind, recordID string, payload *models.Task) (int64, error) {
	log := logger.FromContext(ctx)

	var payloadJSON sql.NullString
	if payload != nil {
		raw, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			log.Err(marshalErr).
				Str("func", "operationQueue.Enqueue").
				Str("record_id", recordID).
				Msg("failed to marshal operation payload")
			return 0, fmt.Errorf("failed to marshal operation payload (record_id=%s): %w", recordID, marshalErr)
		}
		payloadJSON = sql.NullString{String: string(raw), Valid: true}
	}

	result, err := q.DB.ExecContext(ctx, enqueueOperation,
		string(kind),
		recordID,
		payloadJSON,
		time.Now(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "operationQueue.Enqueue").
			Str("kind", string(kind)).
			Str("record_id", recordID).
			Msg("failed to execute insert for pending operation")
		return 0, fmt.Errorf("failed to enqueue operation (record_id=%s): %w", recordID, err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "operationQueue.Enqueue").
			Str("record_id", recordID).
			Msg("failed to get assigned sequence number")
		return 0, fmt.Errorf("%w: no sequence number assigned", ErrOperationNotEnqueued)
	}

	return seq, nil
}

func (q *operationQueue) ListAll(ctx context.Context) ([]models.PendingOperation, error) {
	log := logger.FromContext(ctx)

	rows, err := q.DB.QueryContext(ctx, listAllOperations)
	if err != nil {
		log.Err(err).
			Str("func", "operationQueue.ListAll").
			Msg("failed to execute query for listing pending operations")
		return nil, fmt.Errorf("failed to query pending operations: %w", err)
	}
	defer rows.Close()

	var operations []models.PendingOperation

	for rows.Next() {
		var (
			op          models.PendingOperation
			kind        string
			payloadJSON sql.NullString
		)

		scanErr := rows.Scan(
			&op.Seq,
			&kind,
			&op.RecordID,
			&payloadJSON,
			&op.EnqueuedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "operationQueue.ListAll").
				Msg("failed to scan pending operation row")
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, scanErr)
		}

		op.Kind = models.OperationKind(kind)
		if payloadJSON.Valid {
			var task models.Task
			if unmarshalErr := json.Unmarshal([]byte(payloadJSON.String), &task); unmarshalErr != nil {
				log.Err(unmarshalErr).
					Str("func", "operationQueue.ListAll").
					Int64("sequence_id", op.Seq).
					Msg("failed to unmarshal operation payload")
				return nil, fmt.Errorf("failed to unmarshal operation payload (sequence_id=%d): %w", op.Seq, unmarshalErr)
			}
			op.Payload = &task
		}

		operations = append(operations, op)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "operationQueue.ListAll").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating pending operation rows: %w", rowsErr)
	}

	return operations, nil
}

func (q *operationQueue) Remove(ctx context.Context, seq int64) error {
	log := logger.FromContext(ctx)

	result, err := q.DB.ExecContext(ctx, removeOperation, seq)
	if err != nil {
		log.Err(err).
			Str("func", "operationQueue.Remove").
			Int64("sequence_id", seq).
			Msg("failed to execute delete for pending operation")
		return fmt.Errorf("failed to remove operation (sequence_id=%d): %w", seq, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "operationQueue.Remove").
			Int64("sequence_id", seq).
			Msg("failed to get rows affected after removal")
		return fmt.Errorf("failed to get rows affected (sequence_id=%d): %w", seq, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "operationQueue.Remove").
			Int64("sequence_id", seq).
			Msg("no rows affected during removal: operation not found")
		return fmt.Errorf("%w (sequence_id=%d)", ErrOperationNotFound, seq)
	}

	return nil
}

func (q *operationQueue) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := q.DB.ExecContext(ctx, clearOperations); err != nil {
		log.Err(err).
			Str("func", "operationQueue.Clear").
			Msg("failed to execute delete for all pending operations")
		return fmt.Errorf("failed to clear pending operations: %w", err)
	}

	return nil
}

func (q *operationQueue) Count(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := q.DB.QueryRowContext(ctx, countOperations)
	if scanErr := row.Scan(&count); scanErr != nil {
		log.Err(scanErr).
			Str("func", "operationQueue.Count").
			Msg("failed to scan pending operation count")
		return 0, fmt.Errorf("%w: %v", ErrScanningRow, scanErr)
	}

	return count, nil
}
