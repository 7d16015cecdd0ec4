package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value, o.set = v, true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	description optionalString
	status      optionalString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [--title <text>] [--description <text>] [--status <status>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.status = optionalString{}, optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.status, "s", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := args[0]
	if !c.title.set && !c.description.set && !c.status.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --description or --status)")
		return exitcode.UserError
	}

	task, err := findTaskByID(ctx, env.Backend, id)
	if err != nil {
		return reportBackendError(errOut, id, err)
	}

	list := tasklist.NewList(env.Backend, tasklist.WithContext(ctx), tasklist.WithLogger(env.controllerLogger()))
	session := tasklist.NewEditSession(env.Backend, list, tasklist.DefaultShortcutKeys())
	session.Open(&task)

	in := session.Draft().Input
	if c.title.set {
		in.Title = c.title.value
	}
	if c.description.set {
		in.Description = c.description.value
	}
	if c.status.set {
		status, err := service.ParseStatus(c.status.value)
		if err != nil || status == "" {
			fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status.value)
			return exitcode.UserError
		}
		in.Status = status
	}
	session.SetInput(in)

	return saveAndReport(session, out, errOut, env.Config.Quiet)
}
