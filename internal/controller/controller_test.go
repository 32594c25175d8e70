package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/controller"
	"todolist/internal/service"
	"todolist/internal/testutil"
)

const user = "alice"

func newController(svc *testutil.FakeService) *controller.Controller {
	return controller.New(svc, user, nil)
}

// gatedService lets a test hold a call after the fake has answered it.
type gatedService struct {
	*testutil.FakeService

	afterList   func(call int)
	afterDelete func(id int)

	mu    sync.Mutex
	lists int
}

func (g *gatedService) ListTasks(ctx context.Context, username string) ([]service.Task, error) {
	tasks, err := g.FakeService.ListTasks(ctx, username)
	g.mu.Lock()
	g.lists++
	n := g.lists
	g.mu.Unlock()
	if g.afterList != nil {
		g.afterList(n)
	}
	return tasks, err
}

func (g *gatedService) DeleteTask(ctx context.Context, id int) error {
	err := g.FakeService.DeleteTask(ctx, id)
	if g.afterDelete != nil {
		g.afterDelete(id)
	}
	return err
}

func labels(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Label
	}
	return out
}

func requireKind(t *testing.T, err error, kind controller.Kind) {
	t.Helper()
	var opErr *controller.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, kind, opErr.Kind)
}

func TestMount_PopulatedList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(user, "buy milk", false)
	c := newController(svc)

	require.NoError(t, c.Mount(context.Background()))

	s := c.Snapshot()
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, service.Task{ID: 1, Label: "buy milk", Done: false}, s.Tasks[0])
	assert.Empty(t, s.Err)
	assert.False(t, s.Busy)
	assert.Equal(t, []string{"ListTasks"}, svc.Calls())
}

func TestFetch_UserMissingBootstraps(t *testing.T) {
	svc := testutil.NewFakeService()
	c := newController(svc)

	require.NoError(t, c.FetchTasks(context.Background()))

	s := c.Snapshot()
	assert.Empty(t, s.Tasks)
	assert.NotNil(t, s.Tasks)
	assert.Empty(t, s.Err)
	assert.True(t, s.UserCreated)
	assert.True(t, svc.HasUser(user))
	assert.Equal(t, []string{"ListTasks", "CreateUser"}, svc.Calls())
}

func TestFetch_UserMissingBootstrapAlreadyExists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = service.ErrUserNotFound
	svc.AddUser(user)
	c := newController(svc)

	require.NoError(t, c.FetchTasks(context.Background()))

	s := c.Snapshot()
	assert.Empty(t, s.Tasks)
	assert.True(t, s.UserCreated)
	assert.Empty(t, s.Err)
}

func TestFetch_BootstrapFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateUserErr = errors.New("connection refused")
	c := newController(svc)

	err := c.FetchTasks(context.Background())
	requireKind(t, err, controller.KindBootstrap)

	s := c.Snapshot()
	assert.Equal(t, "Error creando usuario", s.Err)
	assert.False(t, s.UserCreated)
	assert.False(t, s.Busy)
}

func TestFetch_RetrievalFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(user, "keep me", false)
	c := newController(svc)
	require.NoError(t, c.Mount(context.Background()))

	svc.ListTasksErr = errors.New("unexpected status 500")
	err := c.FetchTasks(context.Background())
	requireKind(t, err, controller.KindRetrieval)

	s := c.Snapshot()
	assert.Equal(t, "Error cargando las tareas", s.Err)
	assert.Equal(t, []string{"keep me"}, labels(s.Tasks), "failed fetch keeps the last snapshot")
	assert.False(t, s.Busy)
}

func TestFetch_SuccessClearsError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(user)
	svc.ListTasksErr = errors.New("boom")
	c := newController(svc)

	require.Error(t, c.FetchTasks(context.Background()))
	require.NotEmpty(t, c.Snapshot().Err)

	svc.ListTasksErr = nil
	require.NoError(t, c.FetchTasks(context.Background()))
	assert.Empty(t, c.Snapshot().Err)
}

func TestFetch_StaleSnapshotDropped(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask(user, "old", false)

	started := make(chan struct{})
	release := make(chan struct{})
	svc := &gatedService{FakeService: fake}
	svc.afterList = func(call int) {
		if call == 1 {
			close(started)
			<-release
		}
	}
	c := controller.New(svc, user, nil)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.FetchTasks(ctx) }()
	<-started

	fake.AddTask(user, "new", false)
	require.NoError(t, c.FetchTasks(ctx))
	assert.Equal(t, []string{"old", "new"}, labels(c.Snapshot().Tasks))

	close(release)
	require.NoError(t, <-firstDone)

	s := c.Snapshot()
	assert.Equal(t, []string{"old", "new"}, labels(s.Tasks), "older fetch must not overwrite the newer snapshot")
	assert.False(t, s.Busy)
}

func TestAddTask_AppendsOneAndClearsInput(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(user, "first", false)
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	c.SetInput("  second  ")
	require.NoError(t, c.AddTask(ctx))

	s := c.Snapshot()
	assert.Equal(t, []string{"first", "second"}, labels(s.Tasks))
	assert.Empty(t, s.Input)
	assert.False(t, s.Tasks[1].Done)
	assert.Equal(t, 2, svc.CallCount("ListTasks"), "add re-fetches")
}

func TestAddTask_BlankIsNoop(t *testing.T) {
	for _, input := range []string{"", "  ", "\t\n"} {
		svc := testutil.NewFakeService()
		svc.AddUser(user)
		c := newController(svc)

		c.SetInput(input)
		before := c.Snapshot()
		require.NoError(t, c.AddTask(context.Background()))

		assert.Empty(t, svc.Calls(), "no request for %q", input)
		assert.Equal(t, before, c.Snapshot())
	}
}

func TestAddTask_FailureKeepsInput(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(user)
	svc.CreateTaskErr = errors.New("boom")
	c := newController(svc)

	c.SetInput("buy milk")
	err := c.AddTask(context.Background())
	requireKind(t, err, controller.KindAdd)

	s := c.Snapshot()
	assert.Equal(t, "buy milk", s.Input)
	assert.Equal(t, "Error agregando la tarea", s.Err)
	assert.Equal(t, 0, svc.CallCount("ListTasks"))
}

func TestDeleteTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(user, "a", false)
	id := svc.AddTask(user, "b", false)
	svc.AddTask(user, "c", false)
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	require.NoError(t, c.DeleteTask(ctx, id))

	s := c.Snapshot()
	assert.Equal(t, []string{"a", "c"}, labels(s.Tasks))
	for _, task := range s.Tasks {
		assert.NotEqual(t, id, task.ID)
	}
}

func TestDeleteTask_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddTask(user, "a", false)
	svc.DeleteTaskErr[id] = errors.New("boom")
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	err := c.DeleteTask(ctx, id)
	requireKind(t, err, controller.KindDelete)
	assert.Equal(t, "Error eliminando la tarea", c.Snapshot().Err)
	assert.Equal(t, 1, svc.CallCount("ListTasks"), "no re-fetch after a failed delete")
}

func TestToggleTask(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddTask(user, "a", false)
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	require.NoError(t, c.ToggleTask(ctx, id))
	assert.True(t, c.Snapshot().Tasks[0].Done)

	require.NoError(t, c.ToggleTask(ctx, id))
	assert.False(t, c.Snapshot().Tasks[0].Done)
}

func TestToggleTask_UnknownID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(user)
	c := newController(svc)

	err := c.ToggleTask(context.Background(), 99)
	requireKind(t, err, controller.KindUpdate)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.Equal(t, "Error actualizando la tarea", c.Snapshot().Err)
	assert.Equal(t, 0, svc.CallCount("UpdateTask"))
}

func TestClearAll_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	ids := []int{
		svc.AddTask(user, "a", false),
		svc.AddTask(user, "b", true),
		svc.AddTask(user, "c", false),
	}
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	results, err := c.ClearAll(ctx)
	require.NoError(t, err)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, ids[i], r.ID)
		assert.NoError(t, r.Err)
	}
	s := c.Snapshot()
	assert.Empty(t, s.Tasks)
	assert.Empty(t, s.Err)
	assert.Equal(t, 3, svc.CallCount("DeleteTask"))
	assert.Equal(t, 2, svc.CallCount("ListTasks"), "single re-fetch after the batch")
}

func TestClearAll_PartialFailureReportsPerItem(t *testing.T) {
	svc := testutil.NewFakeService()
	a := svc.AddTask(user, "a", false)
	b := svc.AddTask(user, "b", false)
	boom := errors.New("boom")
	svc.DeleteTaskErr[b] = boom
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	results, err := c.ClearAll(ctx)
	requireKind(t, err, controller.KindClear)
	assert.ErrorIs(t, err, boom)

	require.Len(t, results, 2)
	assert.Equal(t, controller.DeleteResult{ID: a}, results[0])
	assert.Equal(t, b, results[1].ID)
	assert.ErrorIs(t, results[1].Err, boom)

	s := c.Snapshot()
	assert.Equal(t, []string{"b"}, labels(s.Tasks), "snapshot resynced after the batch")
	assert.Equal(t, "Error limpiando las tareas", s.Err)
}

func TestClearAll_DeletesConcurrentlyThenFetchesOnce(t *testing.T) {
	svc := testutil.NewFakeService()
	for _, label := range []string{"a", "b", "c"} {
		svc.AddTask(user, label, false)
	}
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	var mu sync.Mutex
	inFlight, peak := 0, 0
	all := make(chan struct{})
	svc.OnCall = func(op string) {
		if op != "DeleteTask" {
			return
		}
		mu.Lock()
		inFlight++
		peak = max(peak, inFlight)
		if inFlight == 3 {
			close(all)
		}
		mu.Unlock()

		select {
		case <-all:
		case <-time.After(2 * time.Second):
		}

		mu.Lock()
		inFlight--
		mu.Unlock()
	}

	_, err := c.ClearAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, peak, "all deletes in flight at once")
	assert.Equal(t, []string{"ListTasks", "DeleteTask", "DeleteTask", "DeleteTask", "ListTasks"}, svc.Calls())
	assert.Empty(t, c.Snapshot().Tasks)
}

func TestClearAll_ErrorIsEarliestFailureInSnapshotOrder(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask(user, "a", false)
	b := fake.AddTask(user, "b", false)
	last := fake.AddTask(user, "c", false)
	errB := errors.New("b failed")
	errC := errors.New("c failed")
	fake.DeleteTaskErr[b] = errB
	fake.DeleteTaskErr[last] = errC

	// b settles only after c, so c is the first failure to complete.
	cDone := make(chan struct{})
	svc := &gatedService{FakeService: fake}
	svc.afterDelete = func(id int) {
		switch id {
		case last:
			close(cDone)
		case b:
			select {
			case <-cDone:
			case <-time.After(2 * time.Second):
			}
		}
	}
	c := controller.New(svc, user, nil)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	results, err := c.ClearAll(ctx)
	requireKind(t, err, controller.KindClear)
	assert.ErrorIs(t, err, errB)
	assert.NotErrorIs(t, err, errC)

	require.Len(t, results, 3)
	assert.ErrorIs(t, results[1].Err, errB)
	assert.ErrorIs(t, results[2].Err, errC)
	assert.Equal(t, []string{"b", "c"}, labels(c.Snapshot().Tasks))
}

func TestClearAll_Empty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(user)
	c := newController(svc)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	results, err := c.ClearAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, svc.CallCount("DeleteTask"))
}

func TestBusy_TrueOnlyDuringCalls(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser(user)
	c := newController(svc)

	var seen []bool
	svc.OnCall = func(op string) {
		seen = append(seen, c.Busy())
	}

	c.SetInput("x")
	require.NoError(t, c.AddTask(context.Background()))

	assert.Equal(t, []bool{true, true}, seen, "busy across the add and its re-fetch")
	assert.False(t, c.Busy())
}

func TestBusy_ReleasedAfterFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("boom")
	c := newController(svc)

	require.Error(t, c.FetchTasks(context.Background()))
	assert.False(t, c.Busy())
}

func TestSnapshot_IsACopy(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(user, "a", false)
	c := newController(svc)
	require.NoError(t, c.Mount(context.Background()))

	s := c.Snapshot()
	s.Tasks[0].Label = "changed"

	assert.Equal(t, "a", c.Snapshot().Tasks[0].Label)
}

func TestKindMessages(t *testing.T) {
	tests := map[controller.Kind]string{
		controller.KindBootstrap: "Error creando usuario",
		controller.KindRetrieval: "Error cargando las tareas",
		controller.KindAdd:       "Error agregando la tarea",
		controller.KindDelete:    "Error eliminando la tarea",
		controller.KindClear:     "Error limpiando las tareas",
		controller.KindUpdate:    "Error actualizando la tarea",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.Message(), kind.String())
	}
}
