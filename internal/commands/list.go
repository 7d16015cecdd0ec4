package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	page   int
	limit  int
	sort   string
	order  string
	status string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Print one page of tasks" }
func (c *ListCmd) Usage() string {
	return "taskboard list [--page <n>] [--limit <n>] [--sort <field>] [--order <asc|desc>] [--status <status>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", service.DefaultPage, "")
	fs.IntVar(&c.limit, "limit", 0, "")
	fs.StringVar(&c.sort, "sort", string(service.SortCreatedAt), "")
	fs.StringVar(&c.order, "order", string(service.Desc), "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	q, err := c.query(env)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	list := tasklist.NewList(env.Backend,
		tasklist.WithContext(ctx),
		tasklist.WithLogger(env.controllerLogger()),
		tasklist.WithQuery(q))

	msg, _ := list.Refetch()().(tasklist.FetchedMsg)
	if msg.Err != nil {
		return reportBackendError(errOut, "", msg.Err)
	}
	list.Update(msg)

	snap := list.Snapshot()
	if len(snap.Items) == 0 && !env.Config.Quiet {
		fmt.Fprintln(out, "no tasks")
	}
	first := (snap.Query.Page-1)*snap.Query.Limit + 1
	for i, t := range snap.Items {
		output.FormatTask(out, first+i, t)
	}
	if !env.Config.Quiet {
		output.FormatPageFooter(out, snap.Query.Page, snap.TotalPages, len(snap.Items), snap.Total)
	}
	return exitcode.Success
}

func (c *ListCmd) query(env *Env) (service.Query, error) {
	sort, err := service.ParseSortField(c.sort)
	if err != nil {
		return service.Query{}, err
	}
	order, err := service.ParseOrder(c.order)
	if err != nil {
		return service.Query{}, err
	}
	status, err := service.ParseStatus(c.status)
	if err != nil {
		return service.Query{}, err
	}
	if c.page < 1 {
		return service.Query{}, fmt.Errorf("invalid page: %d", c.page)
	}
	limit := c.limit
	if limit == 0 {
		limit = env.Config.Settings.PageLimit
	}
	if limit < 0 {
		return service.Query{}, fmt.Errorf("invalid limit: %d", limit)
	}
	return service.Query{Page: c.page, Limit: limit, Sort: sort, Order: order, Status: status}, nil
}
