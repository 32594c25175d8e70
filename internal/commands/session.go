package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/controller"
	"todolist/internal/exitcode"
	"todolist/internal/logging"
	"todolist/internal/service"
)

// newController builds a controller for the configured user.
// Diagnostics go to errOut only with --debug.
func newController(cfg *config.Config, svc service.Service, errOut io.Writer) *controller.Controller {
	return controller.New(svc, cfg.Username, logging.New(errOut, cfg.Debug))
}

// mount creates a controller and performs the initial fetch, the same way the
// terminal UI does before accepting input.
func mount(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) (*controller.Controller, int) {
	ctrl := newController(cfg, svc, errOut)
	if err := ctrl.Mount(ctx); err != nil {
		return nil, reportError(errOut, err)
	}
	return ctrl, exitcode.Success
}

// reportError prints a controller failure and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var opErr *controller.OpError
	if errors.As(err, &opErr) {
		fmt.Fprintf(errOut, "error: %s: %v\n", opErr.Kind, opErr.Err)
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// ok prints the success marker unless quiet.
func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
