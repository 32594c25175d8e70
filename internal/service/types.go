// Package service defines the backend-agnostic interface for task operations.
package service

import "errors"

// Task represents a single to-do item owned by the remote service.
type Task struct {
	ID    int
	Label string
	Done  bool
}

// User is a remote namespace holding one task collection.
type User struct {
	ID   int
	Name string
}

var (
	// ErrUserNotFound is returned when the user namespace does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned by CreateUser when the user already exists.
	ErrUserExists = errors.New("user already exists")

	// ErrTaskNotFound is returned when a task id is unknown to the backend.
	ErrTaskNotFound = errors.New("task not found")
)
