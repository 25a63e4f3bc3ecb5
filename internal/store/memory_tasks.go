package store

import (
	"sort"
	"sync"

	"github.com/tasksync-dev/tasksync/models"
)

// TaskDirectory is the reference server's task store. It holds the
// authoritative copy of every task in memory behind a read-write mutex;
// clients converge on its contents through snapshot fetches.
type TaskDirectory struct {
	mu    sync.RWMutex
	items map[string]models.Task
}

func NewTaskDirectory() *TaskDirectory {
	return &TaskDirectory{
		items: make(map[string]models.Task),
	}
}

// List returns a snapshot of every stored task ordered by creation time.
// A deleted task is simply absent from the snapshot.
func (d *TaskDirectory) List() []models.Task {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tasks := make([]models.Task, 0, len(d.items))
	for _, task := range d.items {
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks
}

// Get returns the stored task with the given id.
func (d *TaskDirectory) Get(id string) (models.Task, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	task, ok := d.items[id]
	return task, ok
}

// Put stores the given task, replacing any previous version.
func (d *TaskDirectory) Put(task models.Task) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items[task.ID] = task
}

// Delete removes the task with the given id and reports whether it existed.
// Deleting an absent id is not an error: a replayed delete may arrive after
// the task is already gone.
func (d *TaskDirectory) Delete(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.items[id]
	delete(d.items, id)
	return ok
}

// Len reports the number of stored tasks.
func (d *TaskDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.items)
}
