package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command, the default when no command is given.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive task list" }
func (c *UICmd) Usage() string     { return "taskboard [ui] [common flags]" }
func (c *UICmd) NeedsAuth() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	cfg := env.Config
	log, closeLog, err := logging.ToFile(cfg.LogPath(), cfg.Debug)
	if err != nil {
		fmt.Fprintf(errOut, "error: open log: %v\n", err)
		return exitcode.UserError
	}
	defer closeLog()

	final, err := ui.Run(ui.New(ctx, env.Backend, env.Session, cfg.Settings, log))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if final.LoggedOut() && !cfg.Quiet {
		fmt.Fprintln(out, "logged out")
	}
	return exitcode.Success
}
