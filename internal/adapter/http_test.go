// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

// newTestClient builds an httpRemoteClient pointed at the test server.
func newTestClient(t *testing.T, serverURL string) *httpRemoteClient {
	t.Helper()
	remoteCfg := config.ClientRemote{
		HTTPAddress:            serverURL,
		RequestTimeout:         2 * time.Second,
		SubscribeRetryInterval: 50 * time.Millisecond,
	}

	c, err := NewHTTPRemoteClient(remoteCfg, logger.Nop())
	require.NoError(t, err)
	return c.(*httpRemoteClient)
}

func sampleTask(id string) models.Task {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.Task{
		ID:        id,
		Title:     "title-" + id,
		Done:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ── FetchTasks ───────────────────────────────────────────────────────────────

func TestFetchTasks_Success(t *testing.T) {
	want := []models.Task{sampleTask("a1"), sampleTask("b2")}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.FetchTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
}

func TestFetchTasks_EmptySnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.FetchTasks(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchTasks_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchTasks(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestFetchTasks_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchTasks(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode fetch tasks response")
}

// ── WriteTask ────────────────────────────────────────────────────────────────

func TestWriteTask_Success(t *testing.T) {
	task := sampleTask("a1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tasks/a1", r.URL.Path)

		var got models.Task
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, task.Title, got.Title)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.WriteTask(context.Background(), task)

	require.NoError(t, err)
}

func TestWriteTask_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid task"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.WriteTask(context.Background(), sampleTask("a1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── DeleteTask ───────────────────────────────────────────────────────────────

func TestDeleteTask_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/tasks/a1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.DeleteTask(context.Background(), "a1")

	require.NoError(t, err)
}

func TestDeleteTask_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such task"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.DeleteTask(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Subscribe ────────────────────────────────────────────────────────────────

func TestSubscribe_ReceivesSnapshot(t *testing.T) {
	task := sampleTask("a1")
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/watch", r.URL.Path)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		payload, _ := json.Marshal([]models.Task{task})
		_ = conn.WriteMessage(websocket.TextMessage, payload)

		// hold the connection open until the client goes away
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan []models.Task, 1)
	go func() {
		_ = c.Subscribe(ctx, func(tasks []models.Task) {
			select {
			case received <- tasks:
			default:
			}
		})
	}()

	select {
	case got := <-received:
		require.Len(t, got, 1)
		assert.Equal(t, "a1", got[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
}

func TestSubscribe_ReturnsOnCancel(t *testing.T) {
	// no server: dialing fails, Subscribe keeps retrying until cancelled
	c := newTestClient(t, "http://127.0.0.1:1")

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() {
		errC <- c.Subscribe(ctx, func([]models.Task) {})
	}()

	cancel()

	select {
	case err := <-errC:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancellation")
	}
}

// ── URL helpers ──────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare host and port", input: "localhost:8080", want: "http://localhost:8080"},
		{name: "full http url", input: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "https kept", input: "https://tasks.example.com", want: "https://tasks.example.com"},
		{name: "trailing slash trimmed", input: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "surrounding spaces", input: "  localhost:8080  ", want: "http://localhost:8080"},
		{name: "empty", input: "", wantErr: true},
		{name: "spaces only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "http becomes ws", input: "http://localhost:8080", want: "ws://localhost:8080/api/tasks/watch"},
		{name: "https becomes wss", input: "https://tasks.example.com", want: "wss://tasks.example.com/api/tasks/watch"},
		{name: "unsupported scheme", input: "ftp://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := websocketURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
