package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	status      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--description <text>] [--status <status>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.status, "status", string(service.StatusPending), "")
	fs.StringVar(&c.status, "s", string(service.StatusPending), "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	status, err := service.ParseStatus(c.status)
	if err != nil || status == "" {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
		return exitcode.UserError
	}

	list := tasklist.NewList(env.Backend, tasklist.WithContext(ctx), tasklist.WithLogger(env.controllerLogger()))
	session := tasklist.NewEditSession(env.Backend, list, tasklist.DefaultShortcutKeys())
	session.Open(nil)
	session.SetInput(service.TaskInput{Title: title, Description: c.description, Status: status})

	return saveAndReport(session, out, errOut, env.Config.Quiet)
}

// saveAndReport runs the session's save to completion.
func saveAndReport(session *tasklist.EditSession, out, errOut io.Writer, quiet bool) int {
	msg, _ := session.Save()().(tasklist.SavedMsg)
	session.Update(msg)

	if msg.Err != nil {
		fmt.Fprintf(errOut, "error: %s\n", tasklist.SaveErrorMessage(msg.Err))
		return exitCodeFor(msg.Err)
	}
	if !quiet {
		verb := "updated"
		if msg.Created {
			verb = "created"
		}
		fmt.Fprintf(out, "%s %s\n", verb, msg.Task.ID)
	}
	return exitcode.Success
}
