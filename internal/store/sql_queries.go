// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tasksync-dev/tasksync/models"
)

const (
	upsertTask = `
		INSERT INTO tasks (
			id,
			title,
			notes,
			done,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title      = excluded.title,
			notes      = excluded.notes,
			done       = excluded.done,
			updated_at = excluded.updated_at;`

	getSingleTask = `
		SELECT
			id,
			title,
			notes,
			done,
			created_at,
			updated_at
		FROM tasks
		WHERE id = $1;`

	getAllTasks = `
		SELECT
			id,
			title,
			notes,
			done,
			created_at,
			updated_at
		FROM tasks
		ORDER BY created_at;`

	deleteTask = `
		DELETE FROM tasks
		WHERE id = $1;`

	enqueueOperation = `
		INSERT INTO pending_operations (
			kind,
			record_id,
			payload,
			enqueued_at
		) VALUES ($1, $2, $3, $4);`

	listAllOperations = `
		SELECT
			sequence_id,
			kind,
			record_id,
			payload,
			enqueued_at
		FROM pending_operations
		ORDER BY sequence_id;`

	removeOperation = `
		DELETE FROM pending_operations
		WHERE sequence_id = $1;`

	clearOperations = `
		DELETE FROM pending_operations;`

	countOperations = `
		SELECT COUNT(*) FROM pending_operations;`
)

// buildSelectTasksQuery builds the filtered task listing dynamically. Filter
// fields left at their zero value contribute no WHERE clause.
func buildSelectTasksQuery(filter models.TaskFilter) (string, []any, error) {
	builder := squirrel.
		Select("id", "title", "notes", "done", "created_at", "updated_at").
		From("tasks").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Done != nil {
		builder = builder.Where(squirrel.Eq{"done": *filter.Done})
	}
	if filter.TitleContains != "" {
		builder = builder.Where(squirrel.Like{"title": "%" + filter.TitleContains + "%"})
	}
	if filter.UpdatedAfter != nil {
		builder = builder.Where(squirrel.Gt{"updated_at": *filter.UpdatedAfter})
	}

	query, args, err := builder.OrderBy("updated_at DESC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
