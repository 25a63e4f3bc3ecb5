package http

import (
	"encoding/json"
	"sync"

	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

// WatchHub fans the current task snapshot out to every connected watch
// client. Each frame carries the full task set, so watchers hold no
// incremental state and a missed frame is recovered by the next one.
type WatchHub struct {
	logger *logger.Logger

	mu       sync.Mutex
	watchers map[uint64]chan []byte
	nextID   uint64
}

func newWatchHub(logger *logger.Logger) *WatchHub {
	return &WatchHub{
		logger:   logger,
		watchers: make(map[uint64]chan []byte),
	}
}

// Broadcast encodes the snapshot once and queues it for every watcher. A
// watcher with an unread frame gets it replaced: only the newest snapshot
// matters.
func (h *WatchHub) Broadcast(tasks []models.Task) {
	payload, err := json.Marshal(tasks)
	if err != nil {
		h.logger.Err(err).Str("func", "WatchHub.Broadcast").Msg("failed to encode tasks snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.watchers {
		select {
		case ch <- payload:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- payload:
		default:
		}
	}
}

// Len reports the number of connected watchers.
func (h *WatchHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.watchers)
}

func (h *WatchHub) add() (uint64, chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan []byte, 1)
	h.watchers[h.nextID] = ch

	return h.nextID, ch
}

func (h *WatchHub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.watchers, id)
}
