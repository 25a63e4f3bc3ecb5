package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

type taskRepository struct {
	*DB
	logger *logger.Logger
}

func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	return &taskRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *taskRepository) UpsertTask(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, upsertTask,
		task.ID,
		task.Title,
		task.Notes,
		task.Done,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.UpsertTask").
			Str("id", task.ID).
			Msg("failed to execute upsert for task")
		return fmt.Errorf("failed to upsert task (id=%s): %w", task.ID, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Error().
			Str("func", "taskRepository.UpsertTask").
			Str("id", task.ID).
			Msg("upsert affected no rows")
		return fmt.Errorf("%w (id=%s)", ErrTaskNotSaved, task.ID)
	}

	return nil
}

func (r *taskRepository) UpsertTasks(ctx context.Context, tasks ...models.Task) error {
	log := logger.FromContext(ctx)

	if len(tasks) == 0 {
		return nil
	}
	if len(tasks) == 1 {
		return r.UpsertTask(ctx, tasks[0])
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.UpsertTasks").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, task := range tasks {
		result, execErr := tx.ExecContext(ctx, upsertTask,
			task.ID,
			task.Title,
			task.Notes,
			task.Done,
			task.CreatedAt,
			task.UpdatedAt,
		)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "taskRepository.UpsertTasks").
				Str("id", task.ID).
				Msg("failed to execute upsert for task")
			return fmt.Errorf("failed to upsert task (id=%s): %w", task.ID, execErr)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			log.Error().
				Str("func", "taskRepository.UpsertTasks").
				Str("id", task.ID).
				Msg("upsert affected no rows")
			return fmt.Errorf("%w (id=%s)", ErrTaskNotSaved, task.ID)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "taskRepository.UpsertTasks").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func (r *taskRepository) GetTask(ctx context.Context, id string) (models.Task, error) {
	log := logger.FromContext(ctx)

	var task models.Task
	row := r.DB.QueryRowContext(ctx, getSingleTask, id)

	scanErr := row.Scan(
		&task.ID,
		&task.Title,
		&task.Notes,
		&task.Done,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Err(scanErr).
			Str("func", "taskRepository.GetTask").
			Str("id", id).
			Msg("failed to scan task row")
		return models.Task{}, fmt.Errorf("%w: %v", ErrScanningRow, scanErr)
	}

	return task, nil
}

func (r *taskRepository) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllTasks)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.GetAllTasks").
			Msg("failed to execute query for getting all tasks")
		return nil, fmt.Errorf("failed to query all tasks: %w", err)
	}
	defer rows.Close()

	return scanTaskRows(ctx, rows, "taskRepository.GetAllTasks")
}

func (r *taskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTasksQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.ListTasks").
			Msg("failed to build filtered task query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.ListTasks").
			Msg("failed to execute filtered task query")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanTaskRows(ctx, rows, "taskRepository.ListTasks")
}

func (r *taskRepository) DeleteTask(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deleteTask, id)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.DeleteTask").
			Str("id", id).
			Msg("failed to execute delete for task")
		return fmt.Errorf("failed to delete task (id=%s): %w", id, err)
	}

	return nil
}

func (r *taskRepository) DeleteTasks(ctx context.Context, ids ...string) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}
	if len(ids) == 1 {
		return r.DeleteTask(ctx, ids[0])
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.DeleteTasks").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, execErr := tx.ExecContext(ctx, deleteTask, id); execErr != nil {
			log.Err(execErr).
				Str("func", "taskRepository.DeleteTasks").
				Str("id", id).
				Msg("failed to execute delete for task")
			return fmt.Errorf("failed to delete task (id=%s): %w", id, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "taskRepository.DeleteTasks").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func scanTaskRows(ctx context.Context, rows *sql.Rows, caller string) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	var tasks []models.Task

	for rows.Next() {
		var task models.Task

		scanErr := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Notes,
			&task.Done,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, scanErr)
		}

		tasks = append(tasks, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating task rows: %w", rowsErr)
	}

	return tasks, nil
}
