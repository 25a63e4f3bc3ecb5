package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tasksync-dev/tasksync/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// watchTasks upgrades the request to a WebSocket and streams task snapshots.
// The current snapshot is written immediately on connect; afterwards the hub
// pushes a fresh one after every mutation.
func (h *Handler) watchTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Err(err).Str("func", "*Handler.watchTasks").Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	id, frames := h.hub.add()
	defer h.hub.remove(id)

	initial, err := json.Marshal(h.directory.List())
	if err != nil {
		log.Err(err).Str("func", "*Handler.watchTasks").Msg("failed to encode tasks snapshot")
		return
	}
	if err = conn.WriteMessage(websocket.TextMessage, initial); err != nil {
		return
	}

	// The stream is one-directional: inbound frames are discarded. The read
	// loop doubles as peer-disconnect detection and unblocks the writer below.
	readClosed := make(chan struct{})
	go func() {
		defer close(readClosed)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-readClosed:
			return
		case payload := <-frames:
			if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
