package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/service"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct{}

func (c *ClearCmd) Name() string       { return "clear" }
func (c *ClearCmd) Aliases() []string  { return nil }
func (c *ClearCmd) Synopsis() string   { return "Delete all tasks" }
func (c *ClearCmd) Usage() string      { return "todolist clear" }
func (c *ClearCmd) NeedsBackend() bool { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl, code := mount(ctx, cfg, svc, errOut)
	if ctrl == nil {
		return code
	}

	results, err := ctrl.ClearAll(ctx)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			output.FormatDeleteFailure(errOut, r)
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(errOut, "error: %d of %d deletes failed\n", failed, len(results))
		return exitcode.BackendError
	}
	if err != nil {
		return reportError(errOut, err)
	}
	return ok(cfg, out)
}
