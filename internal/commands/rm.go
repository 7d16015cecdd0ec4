package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskboard rm <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := args[0]

	list := tasklist.NewList(env.Backend, tasklist.WithContext(ctx), tasklist.WithLogger(env.controllerLogger()))
	session := tasklist.NewDeleteSession(env.Backend, list)
	session.Open(service.Task{ID: id})

	msg, _ := session.Confirm()().(tasklist.DeletedMsg)
	session.Update(msg)
	if msg.Err != nil {
		if errors.Is(msg.Err, service.ErrNotFound) {
			return reportBackendError(errOut, id, msg.Err)
		}
		fmt.Fprintf(errOut, "error: %s: %v\n", strings.ToLower(session.Notice()), msg.Err)
		return exitCodeFor(msg.Err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
