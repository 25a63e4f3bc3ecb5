package service

import (
	"fmt"
	"sync"

	"github.com/tasksync-dev/tasksync/models"
)

// defaultEventBuffer is the per-subscription channel capacity. Sixteen events
// comfortably covers a full replay pass plus a snapshot merge; a subscriber
// that falls further behind misses events rather than stalling the engine.
const defaultEventBuffer = 16

// Subscription is one receiver of engine events.
type Subscription struct {
	ID string

	ch     chan models.Event
	done   chan struct{}
	hub    *Broadcaster
	mu     sync.Mutex
	closed bool
}

// C returns the channel events are delivered on. The channel is closed when
// the subscription is closed.
func (s *Subscription) C() <-chan models.Event {
	return s.ch
}

// Done returns a channel that is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close detaches the subscription from its broadcaster and closes the event
// channel. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.Unsubscribe(s.ID)
}

// shutdown closes the subscription's channels exactly once. Only called after
// the subscription has been removed from the broadcaster's map, so no
// publisher can still be holding the channel.
func (s *Subscription) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	close(s.ch)
}

// Broadcaster fans sync lifecycle events out to any number of subscribers
// (the terminal UI, tests). Publishing never blocks: a subscriber with a full
// buffer misses the event.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	nextID uint64
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[string]*Subscription),
	}
}

// Subscribe registers a new subscriber and returns its subscription.
func (b *Broadcaster) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		ID:   fmt.Sprintf("sub-%d", b.nextID),
		ch:   make(chan models.Event, defaultEventBuffer),
		done: make(chan struct{}),
		hub:  b,
	}

	b.subs[sub.ID] = sub
	return sub
}

// Unsubscribe removes the subscription with the given id and closes it.
// Unknown ids are ignored.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()

	if ok {
		sub.shutdown()
	}
}

// Publish delivers event to every current subscriber without blocking.
func (b *Broadcaster) Publish(event models.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			// Buffer full, drop the event for this subscriber.
		}
	}
}

// Len reports the number of active subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
