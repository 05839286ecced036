// Package service holds the task operations layer for the console
// application: input validation in front of the store, pass-through
// otherwise.
package service

import (
	"todoapp/internal/models"
	"todoapp/internal/storage/memory"
)

// Tasks validates input before handing operations to the store.
type Tasks struct {
	store *memory.Store
}

// NewTasks wraps the given store.
func NewTasks(store *memory.Store) *Tasks {
	return &Tasks{store: store}
}

// Add creates a task after checking the title is non-empty.
func (t *Tasks) Add(title, description string) (models.Task, error) {
	if _, err := models.ValidateTitle(title); err != nil {
		return models.Task{}, err
	}
	return t.store.Add(title, description)
}

// List returns all tasks in insertion order.
func (t *Tasks) List() []models.Task {
	return t.store.List()
}

// Get returns a single task by id.
func (t *Tasks) Get(id int64) (models.Task, error) {
	return t.store.Get(id)
}

// Update changes only the supplied fields, rejecting an empty title
// before the store is touched.
func (t *Tasks) Update(id int64, title, description *string) (models.Task, error) {
	if title != nil {
		if _, err := models.ValidateTitle(*title); err != nil {
			return models.Task{}, err
		}
	}
	return t.store.Update(id, title, description)
}

// Toggle flips a task's completion flag.
func (t *Tasks) Toggle(id int64) (models.Task, error) {
	return t.store.Toggle(id)
}

// Delete removes a task and reports whether it existed.
func (t *Tasks) Delete(id int64) bool {
	return t.store.Delete(id)
}
