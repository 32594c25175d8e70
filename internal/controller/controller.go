// Package controller holds the task list state and the operations that keep
// it in sync with the backend.
//
// The backend is the only source of truth: every successful mutation is
// followed by a full re-fetch, and the task snapshot is only ever replaced,
// never patched. Failures are recorded as a fixed user-facing message in
// State.Err and returned to the caller as *OpError.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"todolist/internal/logging"
	"todolist/internal/service"
)

// State is a point-in-time copy of what the UI renders.
type State struct {
	Tasks       []service.Task
	Input       string
	Busy        bool
	Err         string
	UserCreated bool
}

// DeleteResult is the outcome of one delete issued by ClearAll.
type DeleteResult struct {
	ID  int
	Err error
}

// Controller drives the task list of a single user.
// It is safe for concurrent use; the busy flag does not reject calls.
type Controller struct {
	svc      service.Service
	username string
	logger   *log.Logger

	mu    sync.Mutex
	state State
	depth int    // outstanding operations
	gen   uint64 // latest fetch token
}

// New creates a controller for username. A nil logger discards output.
func New(svc service.Service, username string, logger *log.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		svc:      svc,
		username: username,
		logger:   logger,
		state:    State{Tasks: []service.Task{}},
	}
}

// Username returns the user namespace the controller works on.
func (c *Controller) Username() string {
	return c.username
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Tasks = make([]service.Task, len(c.state.Tasks))
	copy(s.Tasks, c.state.Tasks)
	return s
}

// SetInput replaces the pending input text.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.state.Input = text
	c.mu.Unlock()
}

// Busy reports whether an operation is outstanding.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Busy
}

// Mount performs the initial fetch.
func (c *Controller) Mount(ctx context.Context) error {
	return c.FetchTasks(ctx)
}

// EnsureUser creates the user, treating "already exists" as success.
func (c *Controller) EnsureUser(ctx context.Context) (bool, error) {
	done := c.begin()
	defer done()
	return c.ensureUser(ctx, c.opLogger("ensure-user"))
}

// FetchTasks replaces the snapshot with the backend's list.
// A missing user is created and the list becomes empty.
func (c *Controller) FetchTasks(ctx context.Context) error {
	done := c.begin()
	defer done()
	return c.fetch(ctx, c.opLogger("fetch"))
}

// AddTask submits the pending input as a new task.
// Blank input is ignored without contacting the backend.
func (c *Controller) AddTask(ctx context.Context) error {
	c.mu.Lock()
	label := strings.TrimSpace(c.state.Input)
	c.mu.Unlock()
	if label == "" {
		return nil
	}

	done := c.begin()
	defer done()
	lg := c.opLogger("add")

	task, err := c.svc.CreateTask(ctx, c.username, label, false)
	if err != nil {
		lg.Error("add task failed", "label", label, "err", err)
		return c.fail(KindAdd, err)
	}
	lg.Debug("task added", "id", task.ID)

	c.mu.Lock()
	c.state.Input = ""
	c.state.Err = ""
	c.mu.Unlock()

	return c.fetch(ctx, lg)
}

// DeleteTask deletes one task and re-fetches.
func (c *Controller) DeleteTask(ctx context.Context, id int) error {
	done := c.begin()
	defer done()
	lg := c.opLogger("delete")

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		lg.Error("delete task failed", "id", id, "err", err)
		return c.fail(KindDelete, err)
	}
	lg.Debug("task deleted", "id", id)
	c.clearErr()

	return c.fetch(ctx, lg)
}

// ToggleTask flips the done flag of a task in the current snapshot.
func (c *Controller) ToggleTask(ctx context.Context, id int) error {
	task, ok := c.find(id)
	if !ok {
		return c.fail(KindUpdate, service.ErrTaskNotFound)
	}

	done := c.begin()
	defer done()
	lg := c.opLogger("toggle")

	task.Done = !task.Done
	if _, err := c.svc.UpdateTask(ctx, task); err != nil {
		lg.Error("update task failed", "id", id, "err", err)
		return c.fail(KindUpdate, err)
	}
	lg.Debug("task updated", "id", id, "done", task.Done)
	c.clearErr()

	return c.fetch(ctx, lg)
}

// ClearAll deletes every task in the current snapshot concurrently, waits for
// all deletes to settle and then re-fetches once. Results are returned in
// snapshot order. If any delete failed the returned error wraps the earliest
// failing entry in snapshot order.
func (c *Controller) ClearAll(ctx context.Context) ([]DeleteResult, error) {
	c.mu.Lock()
	ids := make([]int, len(c.state.Tasks))
	for i, t := range c.state.Tasks {
		ids[i] = t.ID
	}
	c.mu.Unlock()

	done := c.begin()
	defer done()
	lg := c.opLogger("clear")

	results := make([]DeleteResult, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			err := c.svc.DeleteTask(ctx, id)
			results[i] = DeleteResult{ID: id, Err: err}
			return err
		})
	}
	if g.Wait() == nil {
		lg.Debug("tasks cleared", "count", len(ids))
		c.clearErr()
		return results, c.fetch(ctx, lg)
	}

	var firstErr error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			failed++
			lg.Error("delete task failed", "id", r.ID, "err", r.Err)
		}
	}
	if err := c.fetch(ctx, lg); err != nil {
		lg.Warn("re-fetch after clear failed", "err", err)
	}
	lg.Error("clear incomplete", "failed", failed, "total", len(ids))
	return results, c.fail(KindClear, firstErr)
}

func (c *Controller) ensureUser(ctx context.Context, lg *log.Logger) (bool, error) {
	err := c.svc.CreateUser(ctx, c.username)
	switch {
	case err == nil:
		lg.Info("user created", "user", c.username)
		c.mu.Lock()
		c.state.UserCreated = true
		c.state.Err = ""
		c.mu.Unlock()
		return true, nil
	case errors.Is(err, service.ErrUserExists):
		lg.Debug("user already exists", "user", c.username)
		c.mu.Lock()
		c.state.UserCreated = true
		c.mu.Unlock()
		return true, nil
	default:
		lg.Error("create user failed", "user", c.username, "err", err)
		return false, c.fail(KindBootstrap, err)
	}
}

func (c *Controller) fetch(ctx context.Context, lg *log.Logger) error {
	token := c.nextToken()

	tasks, err := c.svc.ListTasks(ctx, c.username)
	if errors.Is(err, service.ErrUserNotFound) {
		lg.Info("user not found, creating", "user", c.username)
		if ok, err := c.ensureUser(ctx, lg); !ok {
			return err
		}
		c.apply(token, nil, false)
		return nil
	}
	if err != nil {
		lg.Error("fetch tasks failed", "user", c.username, "err", err)
		return c.fail(KindRetrieval, err)
	}

	lg.Debug("tasks fetched", "count", len(tasks))
	c.apply(token, tasks, true)
	return nil
}

// apply installs a fetched snapshot unless a newer fetch has started.
func (c *Controller) apply(token uint64, tasks []service.Task, clearErr bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		c.logger.Debug("dropping stale snapshot", "token", token, "latest", c.gen)
		return
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	c.state.Tasks = tasks
	if clearErr {
		c.state.Err = ""
	}
}

func (c *Controller) nextToken() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// begin marks an operation outstanding and returns its release func.
func (c *Controller) begin() func() {
	c.mu.Lock()
	c.depth++
	c.state.Busy = true
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		c.depth--
		c.state.Busy = c.depth > 0
		c.mu.Unlock()
	}
}

func (c *Controller) fail(kind Kind, err error) error {
	c.mu.Lock()
	c.state.Err = kind.Message()
	c.mu.Unlock()
	return &OpError{Kind: kind, Err: err}
}

func (c *Controller) clearErr() {
	c.mu.Lock()
	c.state.Err = ""
	c.mu.Unlock()
}

func (c *Controller) find(id int) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func (c *Controller) opLogger(op string) *log.Logger {
	return c.logger.With("op", op, "req", uuid.NewString()[:8])
}
