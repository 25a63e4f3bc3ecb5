package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

func newTestQueue(t *testing.T, db *sql.DB) OperationQueue {
	t.Helper()
	return NewOperationQueue(newDBFromSQL(db), logger.Nop())
}

var operationColumns = []string{"sequence_id", "kind", "record_id", "payload", "enqueued_at"}

func TestEnqueue_SaveCarriesPayload(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	task := sampleTask("a1", time.Now().Truncate(time.Millisecond))
	payloadJSON, err := json.Marshal(&task)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO pending_operations").
		WithArgs("save", task.ID, string(payloadJSON), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	seq, err := queue.Enqueue(testContext(), models.OperationSave, task.ID, &task)
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueue_DeleteHasNilPayload(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectExec("INSERT INTO pending_operations").
		WithArgs("delete", "a1", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(8, 1))

	seq, err := queue.Enqueue(testContext(), models.OperationDelete, "a1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(8), seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueue_DBErrorSurfaces(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectExec("INSERT INTO pending_operations").
		WillReturnError(errors.New("disk I/O error"))

	_, err := queue.Enqueue(testContext(), models.OperationDelete, "a1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to enqueue operation")
}

func TestEnqueue_SequencesGrow(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectExec("INSERT INTO pending_operations").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pending_operations").
		WillReturnResult(sqlmock.NewResult(2, 1))

	first, err := queue.Enqueue(testContext(), models.OperationDelete, "a1", nil)
	require.NoError(t, err)
	second, err := queue.Enqueue(testContext(), models.OperationDelete, "b2", nil)
	require.NoError(t, err)

	assert.Less(t, first, second)
}

func TestListAll_ReturnsInsertionOrder(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	now := time.Now().Truncate(time.Millisecond)
	task := sampleTask("a1", now)
	payloadJSON, err := json.Marshal(&task)
	require.NoError(t, err)

	rows := sqlmock.NewRows(operationColumns).
		AddRow(int64(1), "save", task.ID, string(payloadJSON), now).
		AddRow(int64(2), "delete", "b2", nil, now.Add(time.Second))
	mock.ExpectQuery("SELECT (.+) FROM pending_operations ORDER BY sequence_id").
		WillReturnRows(rows)

	operations, err := queue.ListAll(testContext())
	require.NoError(t, err)
	require.Len(t, operations, 2)

	assert.Equal(t, int64(1), operations[0].Seq)
	assert.Equal(t, models.OperationSave, operations[0].Kind)
	assert.Equal(t, task.ID, operations[0].RecordID)
	require.NotNil(t, operations[0].Payload)
	assert.Equal(t, task.Title, operations[0].Payload.Title)

	assert.Equal(t, int64(2), operations[1].Seq)
	assert.Equal(t, models.OperationDelete, operations[1].Kind)
	assert.Equal(t, "b2", operations[1].RecordID)
	assert.Nil(t, operations[1].Payload)
}

func TestListAll_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectQuery("SELECT (.+) FROM pending_operations").
		WillReturnRows(sqlmock.NewRows(operationColumns))

	operations, err := queue.ListAll(testContext())
	require.NoError(t, err)
	assert.Empty(t, operations)
}

func TestListAll_BadPayload(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	rows := sqlmock.NewRows(operationColumns).
		AddRow(int64(1), "save", "a1", "{corrupted", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM pending_operations").
		WillReturnRows(rows)

	_, err := queue.ListAll(testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal operation payload")
}

func TestListAll_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectQuery("SELECT (.+) FROM pending_operations").
		WillReturnError(errors.New("database is locked"))

	_, err := queue.ListAll(testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query pending operations")
}

func TestRemove_Success(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectExec("DELETE FROM pending_operations WHERE sequence_id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := queue.Remove(testContext(), 7)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectExec("DELETE FROM pending_operations WHERE sequence_id").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queue.Remove(testContext(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationNotFound)
}

func TestClear_Success(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectExec("DELETE FROM pending_operations").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := queue.Clear(testContext())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_Success(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(rows)

	count, err := queue.Count(testContext())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCount_ScanError(t *testing.T) {
	db, mock := newTestDB(t)
	queue := newTestQueue(t, db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(errors.New("database is locked"))

	_, err := queue.Count(testContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanningRow)
}
