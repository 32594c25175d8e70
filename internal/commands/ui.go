package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/controller"
	"todolist/internal/exitcode"
	"todolist/internal/logging"
	"todolist/internal/service"
	"todolist/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
// Starts the interactive task list; logs go to todolist.log in the config dir.
type UICmd struct {
	inline bool
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive task list" }
func (c *UICmd) Usage() string      { return "todolist ui [--inline]" }
func (c *UICmd) NeedsBackend() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.inline, "inline", false, "")
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if !ui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: ui requires a terminal")
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	logger, f, err := logging.OpenFile(cfg.LogPath(), level)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer f.Close()

	ctrl := controller.New(svc, cfg.Username, logger)
	if err := ui.Run(ctx, ctrl, ui.WithAltScreen(!c.inline)); err != nil {
		logger.Error("ui exited", "err", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
