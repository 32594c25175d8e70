package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
)

func init() {
	Register(&RmUserCmd{})
}

// RmUserCmd implements the rmuser command.
type RmUserCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmUserCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmUserCmd) Name() string       { return "rmuser" }
func (c *RmUserCmd) Aliases() []string  { return nil }
func (c *RmUserCmd) Synopsis() string   { return "Delete a user and its tasks" }
func (c *RmUserCmd) Usage() string      { return "todolist rmuser [--force] <name>" }
func (c *RmUserCmd) NeedsBackend() bool { return true }

func (c *RmUserCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmUserCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: user name required")
		return exitcode.UserError
	}
	if err := config.ValidateUsername(name); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Refuse to drop tasks silently (unless --force)
	tasks, err := svc.ListTasks(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fmt.Fprintf(errOut, "error: user not found: %s\n", name)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	if len(tasks) > 0 && !c.force {
		fmt.Fprintln(errOut, "error: user has tasks (use --force)")
		return exitcode.UserError
	}

	if err := svc.DeleteUser(ctx, name); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return ok(cfg, out)
}
