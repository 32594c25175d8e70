// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Commands and the controller never import the HTTP backend directly.
type Service interface {
	// CreateUser creates the user namespace.
	// Returns ErrUserExists if the backend reports it already exists.
	CreateUser(ctx context.Context, username string) error

	// ListTasks returns the user's tasks in server order.
	// Returns ErrUserNotFound if the user does not exist.
	ListTasks(ctx context.Context, username string) ([]Task, error)

	// CreateTask adds a task to the user's list and returns it as stored.
	CreateTask(ctx context.Context, username, label string, done bool) (Task, error)

	// UpdateTask replaces the label and completion flag of a task.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id int) error

	// ListUsers returns all user namespaces known to the backend.
	ListUsers(ctx context.Context) ([]User, error)

	// DeleteUser deletes a user namespace and all of its tasks.
	DeleteUser(ctx context.Context, username string) error
}
