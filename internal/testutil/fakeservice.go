// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todolist/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	users  map[string][]service.Task
	order  []string
	nextID int
	calls  []string

	// Error injection for testing
	CreateUserErr error
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr map[int]error // task id -> error
	ListUsersErr  error
	DeleteUserErr error

	// OnCall, if set, runs at the start of every call with the operation name.
	OnCall func(op string)
}

// NewFakeService creates an empty FakeService with no users.
func NewFakeService() *FakeService {
	return &FakeService{
		users:         make(map[string][]service.Task),
		nextID:        1,
		DeleteTaskErr: make(map[int]error),
	}
}

// AddUser adds a user with no tasks.
func (f *FakeService) AddUser(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addUserLocked(name)
}

// AddTask adds a task for a user, creating the user if needed. Returns the task id.
func (f *FakeService) AddTask(username, label string, done bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addUserLocked(username)
	id := f.nextID
	f.nextID++
	f.users[username] = append(f.users[username], service.Task{ID: id, Label: label, Done: done})
	return id
}

// Tasks returns a copy of the stored tasks for a user.
func (f *FakeService) Tasks(username string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.users[username]...)
}

// HasUser reports whether the user exists.
func (f *FakeService) HasUser(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[name]
	return ok
}

// Calls returns the operation names seen so far, in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times op was called.
func (f *FakeService) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

func (f *FakeService) addUserLocked(name string) {
	if _, ok := f.users[name]; ok {
		return
	}
	f.users[name] = nil
	f.order = append(f.order, name)
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	hook := f.OnCall
	f.mu.Unlock()
	if hook != nil {
		hook(op)
	}
}

// CreateUser implements service.Service.
func (f *FakeService) CreateUser(ctx context.Context, username string) error {
	f.record("CreateUser")
	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; ok {
		return fmt.Errorf("%s: %w", username, service.ErrUserExists)
	}
	f.addUserLocked(username)
	return nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, username string) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("%s: %w", username, service.ErrUserNotFound)
	}
	return append([]service.Task{}, tasks...), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, username, label string, done bool) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; !ok {
		return service.Task{}, fmt.Errorf("%s: %w", username, service.ErrUserNotFound)
	}
	t := service.Task{ID: f.nextID, Label: label, Done: done}
	f.nextID++
	f.users[username] = append(f.users[username], t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, tasks := range f.users {
		for i, t := range tasks {
			if t.ID == task.ID {
				f.users[name][i] = task
				return task, nil
			}
		}
	}
	return service.Task{}, fmt.Errorf("task %d: %w", task.ID, service.ErrTaskNotFound)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.record("DeleteTask")
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteTaskErr[id]; err != nil {
		return err
	}
	for name, tasks := range f.users {
		for i, t := range tasks {
			if t.ID == id {
				f.users[name] = append(tasks[:i:i], tasks[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("task %d: %w", id, service.ErrTaskNotFound)
}

// ListUsers implements service.Service.
func (f *FakeService) ListUsers(ctx context.Context) ([]service.User, error) {
	f.record("ListUsers")
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]service.User, 0, len(f.order))
	for i, name := range f.order {
		result = append(result, service.User{ID: i + 1, Name: name})
	}
	return result, nil
}

// DeleteUser implements service.Service.
func (f *FakeService) DeleteUser(ctx context.Context, username string) error {
	f.record("DeleteUser")
	if f.DeleteUserErr != nil {
		return f.DeleteUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; !ok {
		return fmt.Errorf("%s: %w", username, service.ErrUserNotFound)
	}
	delete(f.users, username)
	for i, name := range f.order {
		if name == username {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}
