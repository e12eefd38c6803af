package task

import (
	"fmt"
	"strings"
)

// Service implements task operations on top of a Store.
type Service struct {
	store Store
}

// NewService returns a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// nextID returns one more than the highest id in tasks, or 1 if tasks is empty.
func nextID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// indexOf returns the index of the task with id, or -1.
func indexOf(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Value: title, Err: errTitleRequired}
	}
	return trimmed, nil
}

func (s *Service) load(location string) ([]Task, error) {
	tasks, err := s.store.Load(location)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

func (s *Service) save(location string, tasks []Task) error {
	if err := s.store.Save(location, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Create adds a task with the default status and priority and returns it.
func (s *Service) Create(location, title, description string) (Task, error) {
	title, err := validateTitle(title)
	if err != nil {
		return Task{}, err
	}

	tasks, err := s.load(location)
	if err != nil {
		return Task{}, err
	}

	created := Task{
		ID:          nextID(tasks),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      DefaultStatus,
		Priority:    DefaultPriority,
	}
	tasks = append(tasks, created)

	if err := s.save(location, tasks); err != nil {
		return Task{}, err
	}
	return created, nil
}

// List returns the tasks matching filter in stored order.
func (s *Service) List(location string, filter Filter) ([]Task, error) {
	var status Status
	if filter.Status != "" {
		st, err := ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	var priority Priority
	if filter.Priority != "" {
		p, err := ParsePriority(filter.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	tasks, err := s.load(location)
	if err != nil {
		return nil, err
	}

	if status != "" {
		tasks = filterTasks(tasks, func(t Task) bool { return t.Status == status })
	}
	if priority != "" {
		tasks = filterTasks(tasks, func(t Task) bool { return t.Priority == priority })
	}
	return tasks, nil
}

func filterTasks(tasks []Task, keep func(Task) bool) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Get returns the task with id.
func (s *Service) Get(location string, id int) (Task, error) {
	tasks, err := s.load(location)
	if err != nil {
		return Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	return tasks[i], nil
}

// Update changes the supplied fields of the task with id and returns the
// result. Every supplied field is validated before anything is changed.
func (s *Service) Update(location string, id int, fields UpdateFields) (Task, error) {
	tasks, err := s.load(location)
	if err != nil {
		return Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	updated := tasks[i]
	if fields.Title != nil {
		title, err := validateTitle(*fields.Title)
		if err != nil {
			return Task{}, err
		}
		updated.Title = title
	}
	if fields.Description != nil {
		updated.Description = strings.TrimSpace(*fields.Description)
	}
	if fields.Status != nil {
		st, err := ParseStatus(*fields.Status)
		if err != nil {
			return Task{}, err
		}
		updated.Status = st
	}
	if fields.Priority != nil {
		p, err := ParsePriority(*fields.Priority)
		if err != nil {
			return Task{}, err
		}
		updated.Priority = p
	}

	tasks[i] = updated
	if err := s.save(location, tasks); err != nil {
		return Task{}, err
	}
	return updated, nil
}

// Delete removes the task with id. It reports false, without writing, when
// no such task exists.
func (s *Service) Delete(location string, id int) (bool, error) {
	tasks, err := s.load(location)
	if err != nil {
		return false, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return false, nil
	}

	tasks = append(tasks[:i], tasks[i+1:]...)
	if err := s.save(location, tasks); err != nil {
		return false, err
	}
	return true, nil
}
