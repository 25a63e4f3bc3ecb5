package service

import (
	"sync"

	"github.com/tasksync-dev/tasksync/models"
)

// pendingIndex mirrors the durable operation queue in memory: per record id,
// how many queued saves and deletes are still unconfirmed. The reconciler
// consumes it as two id sets; keeping counts (rather than booleans) makes the
// index exact when the same record is mutated several times while offline.
//
// The queue itself stays the source of truth: the index is rebuilt from it on
// startup and updated in step with every enqueue and confirmed removal.
type pendingIndex struct {
	mu    sync.Mutex
	saves map[string]int
	dels  map[string]int
}

func newPendingIndex() *pendingIndex {
	return &pendingIndex{
		saves: make(map[string]int),
		dels:  make(map[string]int),
	}
}

// rebuild replaces the index contents with the given queue snapshot.
func (p *pendingIndex) rebuild(ops []models.PendingOperation) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.saves = make(map[string]int, len(ops))
	p.dels = make(map[string]int)

	for _, op := range ops {
		switch op.Kind {
		case models.OperationSave:
			p.saves[op.RecordID]++
		case models.OperationDelete:
			p.dels[op.RecordID]++
		}
	}
}

// add records a newly enqueued operation.
func (p *pendingIndex) add(kind models.OperationKind, recordID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch kind {
	case models.OperationSave:
		p.saves[recordID]++
	case models.OperationDelete:
		p.dels[recordID]++
	}
}

// remove records a confirmed (replayed and dequeued) operation.
func (p *pendingIndex) remove(kind models.OperationKind, recordID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch kind {
	case models.OperationSave:
		p.decrement(p.saves, recordID)
	case models.OperationDelete:
		p.decrement(p.dels, recordID)
	}
}

// decrement lowers the count for id, dropping the key at zero. Callers must
// hold p.mu.
func (p *pendingIndex) decrement(m map[string]int, id string) {
	if m[id] <= 1 {
		delete(m, id)
		return
	}
	m[id]--
}

// snapshot returns the ids with unconfirmed deletes (tombstones) and the ids
// with unconfirmed saves, as independent copies safe to use without locking.
func (p *pendingIndex) snapshot() (tombstones, queuedSaves models.IDSet) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tombstones = make(models.IDSet, len(p.dels))
	for id := range p.dels {
		tombstones[id] = struct{}{}
	}

	queuedSaves = make(models.IDSet, len(p.saves))
	for id := range p.saves {
		queuedSaves[id] = struct{}{}
	}

	return tombstones, queuedSaves
}
