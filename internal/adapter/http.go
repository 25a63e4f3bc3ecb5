package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/utils"
	"github.com/tasksync-dev/tasksync/models"
)

type httpRemoteClient struct {
	client *utils.HTTPClient

	wsURL         string
	retryInterval time.Duration

	logger *logger.Logger
}

// NewHTTPRemoteClient constructs the HTTP/REST implementation of
// [RemoteClient]. It normalises and validates the base URL from
// remoteCfg.HTTPAddress, configures the underlying HTTP client with the
// resolved base URL and request timeout, and derives the WebSocket endpoint
// used by Subscribe.
//
// Returns an error if remoteCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteClient(remoteCfg config.ClientRemote, logger *logger.Logger) (RemoteClient, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(remoteCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid remote http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout)

	wsURL, err := websocketURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote websocket address: %w", err)
	}

	retryInterval := remoteCfg.SubscribeRetryInterval
	if retryInterval <= 0 {
		retryInterval = config.DefaultSubscribeRetryInterval
	}

	return &httpRemoteClient{
		client:        client,
		wsURL:         wsURL,
		retryInterval: retryInterval,
		logger:        logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// websocketURL derives the snapshot stream endpoint from the normalised HTTP
// base URL.
func websocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/api/tasks/watch"
	return u.String(), nil
}

// FetchTasks implements [RemoteClient]. It GETs the full snapshot from
// GET /api/tasks and decodes the response into a slice of [models.Task].
func (h *httpRemoteClient) FetchTasks(ctx context.Context) ([]models.Task, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("fetch tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err = json.Unmarshal(resp.Body(), &tasks); err != nil {
		return nil, fmt.Errorf("decode fetch tasks response: %w", err)
	}

	return tasks, nil
}

// WriteTask implements [RemoteClient]. It PUTs the complete record to
// PUT /api/tasks/{id}, creating or replacing the remote copy.
func (h *httpRemoteClient) WriteTask(ctx context.Context, task models.Task) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(task).
		Put("/api/tasks/" + url.PathEscape(task.ID))
	if err != nil {
		return fmt.Errorf("write task request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteTask implements [RemoteClient]. It sends DELETE /api/tasks/{id}.
// Returns [ErrNotFound] (wrapped) on HTTP 404.
func (h *httpRemoteClient) DeleteTask(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/tasks/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}

	return mapHTTPError(resp)
}

// Subscribe implements [RemoteClient]. It dials the server's WebSocket
// snapshot stream and invokes onSnapshot for every pushed snapshot. Dropped
// connections are redialed after the configured retry interval until ctx is
// cancelled.
func (h *httpRemoteClient) Subscribe(ctx context.Context, onSnapshot func(tasks []models.Task)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, h.wsURL, nil)
		if err != nil {
			h.logger.Warn().
				Err(err).
				Str("func", "httpRemoteClient.Subscribe").
				Msg("snapshot stream dial failed")
			if waitErr := sleepContext(ctx, h.retryInterval); waitErr != nil {
				return waitErr
			}
			continue
		}

		h.readSnapshots(ctx, conn, onSnapshot)

		if waitErr := sleepContext(ctx, h.retryInterval); waitErr != nil {
			return waitErr
		}
	}
}

// readSnapshots consumes snapshot messages until the connection drops or ctx
// is cancelled.
func (h *httpRemoteClient) readSnapshots(ctx context.Context, conn *websocket.Conn, onSnapshot func(tasks []models.Task)) {
	defer conn.Close()

	// unblock ReadMessage when ctx is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				h.logger.Warn().
					Err(err).
					Str("func", "httpRemoteClient.readSnapshots").
					Msg("snapshot stream closed")
			}
			return
		}

		var tasks []models.Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			h.logger.Err(err).
				Str("func", "httpRemoteClient.readSnapshots").
				Msg("failed to decode snapshot message")
			continue
		}

		onSnapshot(tasks)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
