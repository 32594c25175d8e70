package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
)

func init() {
	Register(&InitCmd{})
}

// InitCmd implements the init command: make sure the configured user exists.
type InitCmd struct{}

func (c *InitCmd) Name() string       { return "init" }
func (c *InitCmd) Aliases() []string  { return nil }
func (c *InitCmd) Synopsis() string   { return "Create the configured user if missing" }
func (c *InitCmd) Usage() string      { return "todolist init" }
func (c *InitCmd) NeedsBackend() bool { return true }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl := newController(cfg, svc, errOut)
	if _, err := ctrl.EnsureUser(ctx); err != nil {
		return reportError(errOut, err)
	}
	return ok(cfg, out)
}
