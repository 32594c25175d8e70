// Package playground implements the service.Service interface using the public to-do demo API.
package playground

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"google.golang.org/api/googleapi"

	"todolist/internal/config"
	"todolist/internal/service"
)

// UsersPageSize is the number of users requested per page.
const UsersPageSize = 100

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a new API client from config.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{http: httpClient, baseURL: baseURL}
}

type todoPayload struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

type todoRequest struct {
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

type userPayload struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	Todos []todoPayload `json:"todos"`
}

type usersPayload struct {
	Users []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"users"`
}

// CreateUser creates the user namespace.
func (c *Client) CreateUser(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(username), nil)
	if err != nil {
		if statusCode(err) == http.StatusBadRequest {
			return fmt.Errorf("%s: %w", username, service.ErrUserExists)
		}
		return wrapError(err)
	}
	return nil
}

// ListTasks returns the user's tasks in server order.
func (c *Client) ListTasks(ctx context.Context, username string) ([]service.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", username, service.ErrUserNotFound)
		}
		return nil, wrapError(err)
	}

	if err := validateUser(body); err != nil {
		return nil, err
	}
	var user userPayload
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	result := make([]service.Task, 0, len(user.Todos))
	for _, t := range user.Todos {
		result = append(result, toTask(t))
	}
	return result, nil
}

// CreateTask adds a task to the user's list.
func (c *Client) CreateTask(ctx context.Context, username, label string, done bool) (service.Task, error) {
	body, err := c.do(ctx, http.MethodPost, "/todos/"+url.PathEscape(username), todoRequest{
		Label:  label,
		IsDone: done,
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return service.Task{}, fmt.Errorf("%s: %w", username, service.ErrUserNotFound)
		}
		return service.Task{}, wrapError(err)
	}
	return decodeTask(body)
}

// UpdateTask replaces the label and completion flag of a task.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	body, err := c.do(ctx, http.MethodPut, "/todos/"+strconv.Itoa(task.ID), todoRequest{
		Label:  task.Label,
		IsDone: task.Done,
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return service.Task{}, fmt.Errorf("task %d: %w", task.ID, service.ErrTaskNotFound)
		}
		return service.Task{}, wrapError(err)
	}
	return decodeTask(body)
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/todos/"+strconv.Itoa(id), nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return fmt.Errorf("task %d: %w", id, service.ErrTaskNotFound)
		}
		return wrapError(err)
	}
	return nil
}

// ListUsers returns all user namespaces in API order.
func (c *Client) ListUsers(ctx context.Context) ([]service.User, error) {
	var result []service.User
	for offset := 0; ; offset += UsersPageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(UsersPageSize))

		body, err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil)
		if err != nil {
			return nil, wrapError(err)
		}
		var page usersPayload
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		for _, u := range page.Users {
			result = append(result, service.User{ID: u.ID, Name: u.Name})
		}
		if len(page.Users) < UsersPageSize {
			return result, nil
		}
	}
}

// DeleteUser deletes a user namespace and its tasks.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(username), nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return fmt.Errorf("%s: %w", username, service.ErrUserNotFound)
		}
		return wrapError(err)
	}
	return nil
}

// do sends a request and returns the response body of a 2xx response.
// Other statuses come back as *googleapi.Error.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer googleapi.CloseBody(res)

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, err
	}
	return io.ReadAll(res.Body)
}

func decodeTask(body []byte) (service.Task, error) {
	var t todoPayload
	if err := json.Unmarshal(body, &t); err != nil {
		return service.Task{}, fmt.Errorf("decode task: %w", err)
	}
	return toTask(t), nil
}

func toTask(t todoPayload) service.Task {
	return service.Task{ID: t.ID, Label: t.Label, Done: t.IsDone}
}

// statusCode returns the HTTP status carried by err, or 0.
func statusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.New("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("unexpected status %d: %w", apiErr.Code, err)
	}
	return err
}
