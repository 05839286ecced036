// Package memory provides the in-memory task store used by the console
// application. Tasks live only for the lifetime of the process.
package memory

import (
	"strings"

	"todoapp/internal/models"
)

// Store keeps tasks in insertion order and hands out sequential ids.
// Ids start at 1 and are never reused, even after deletion.
type Store struct {
	tasks  []models.Task
	nextID int64
}

// New returns an empty store.
func New() *Store {
	return &Store{nextID: 1}
}

// Add validates the title, assigns the next id and appends the task.
func (s *Store) Add(title, description string) (models.Task, error) {
	trimmed, err := models.ValidateTitle(title)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          s.nextID,
		Title:       trimmed,
		Description: strings.TrimSpace(description),
		Completed:   false,
	}
	s.tasks = append(s.tasks, task)
	s.nextID++
	return task, nil
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (models.Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return models.Task{}, models.ErrNotFound
	}
	return s.tasks[idx], nil
}

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Update applies only the supplied fields. A nil pointer leaves the field
// untouched; a supplied title must survive trimming.
func (s *Store) Update(id int64, title, description *string) (models.Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return models.Task{}, models.ErrNotFound
	}

	if title != nil {
		trimmed, err := models.ValidateTitle(*title)
		if err != nil {
			return models.Task{}, err
		}
		s.tasks[idx].Title = trimmed
	}
	if description != nil {
		s.tasks[idx].Description = strings.TrimSpace(*description)
	}
	return s.tasks[idx], nil
}

// Toggle flips the completion flag.
func (s *Store) Toggle(id int64) (models.Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return models.Task{}, models.ErrNotFound
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	return s.tasks[idx], nil
}

// Delete removes the task and reports whether anything was removed.
func (s *Store) Delete(id int64) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return true
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
