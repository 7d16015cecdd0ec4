// Package ui is the interactive task list view.
package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

// Session is the login session as the view needs it.
type Session interface {
	Username(ctx context.Context) string
	Logout(ctx context.Context) error
}

// filters is the order the filter key cycles through. Empty means all.
var filters = []service.Status{"", service.StatusPending, service.StatusInProgress, service.StatusDone}

// Model is the Bubble Tea model of the task list view.
type Model struct {
	ctx     context.Context
	keys    config.Keymap
	session Session
	log     *slog.Logger

	list *tasklist.List
	edit *tasklist.EditSession
	del  *tasklist.DeleteSession

	username  string
	cursor    int
	form      form
	spinner   spinner.Model
	status    string
	loc       *time.Location
	loggedOut bool
}

// New builds the view over svc. Nothing is fetched until Init runs.
func New(ctx context.Context, svc service.Service, session Session, settings config.Settings, log *slog.Logger) Model {
	q := service.DefaultQuery()
	q.Limit = settings.PageLimit

	list := tasklist.NewList(svc,
		tasklist.WithContext(ctx),
		tasklist.WithLogger(log),
		tasklist.WithQuery(q))
	keys := settings.Keys

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:     ctx,
		keys:    keys,
		session: session,
		log:     log,
		list:    list,
		edit: tasklist.NewEditSession(svc, list, tasklist.ShortcutKeys{
			Save:   keys.Save,
			Submit: keys.Submit,
			Cancel: keys.Cancel,
		}),
		del:      tasklist.NewDeleteSession(svc, list),
		username: session.Username(ctx),
		form:     newForm(),
		spinner:  sp,
		loc:      time.Local,
	}
}

// LoggedOut reports whether the view was left through the logout key.
func (m Model) LoggedOut() bool { return m.loggedOut }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.list.Refetch(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasklist.FetchedMsg:
		m.list.Update(msg)
		m.cursor = clampCursor(m.cursor, len(m.list.Result().Items))
		return m, nil

	case tasklist.SavedMsg:
		cmd, _ := m.edit.Update(msg)
		if msg.Err == nil {
			m.form.reset()
			if msg.Created {
				m.status = "Task created"
			} else {
				m.status = "Task updated"
			}
		}
		return m, cmd

	case tasklist.DeletedMsg:
		cmd, _ := m.del.Update(msg)
		if msg.Err == nil {
			m.status = "Task deleted"
		}
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.del.Notice() != "":
			return m.updateNotice(msg)
		case m.edit.IsOpen():
			return m.updateForm(msg)
		case m.del.IsOpen():
			return m.updateDeleteConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateNotice blocks every key until the delete failure is acknowledged.
func (m Model) updateNotice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", m.keys.Cancel, m.keys.Confirm:
		m.del.DismissNotice()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.edit.SetInput(m.form.input())
	if cmd, handled := m.edit.Shortcuts().Handle(msg, m.form.multiline()); handled {
		if !m.edit.IsOpen() {
			m.form.reset()
			m.status = "Cancelled"
		}
		return m, cmd
	}

	switch msg.String() {
	case m.keys.NextField:
		m.form.next()
		return m, nil
	case m.keys.PrevField:
		m.form.prev()
		return m, nil
	}
	cmd := m.form.update(msg)
	m.edit.SetInput(m.form.input())
	return m, cmd
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.Confirm, "Y":
		return m, m.del.Confirm()
	case m.keys.Cancel, "n", "N":
		if m.del.IsDeleting() {
			return m, nil
		}
		m.del.Close()
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.list.Result().Items
	snap := m.list.Snapshot()

	switch msg.String() {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(items))
	case m.keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(items))
	case m.keys.Add:
		m.edit.Open(nil)
		m.form.load(m.edit.Draft().Input)
		m.status = ""
	case m.keys.Edit:
		if len(items) == 0 {
			return m, nil
		}
		task := items[m.cursor]
		m.edit.Open(&task)
		m.form.load(m.edit.Draft().Input)
		m.status = ""
	case m.keys.Delete:
		if len(items) == 0 {
			return m, nil
		}
		m.del.Open(items[m.cursor])
	case m.keys.Filter:
		return m, m.list.SetFilter(nextFilter(snap.Query.Status))
	case m.keys.SortTitle:
		return m, m.list.ChangeSort(service.SortTitle)
	case m.keys.SortStatus:
		return m, m.list.ChangeSort(service.SortStatus)
	case m.keys.SortCreated:
		return m, m.list.ChangeSort(service.SortCreatedAt)
	case m.keys.NextPage, "right":
		if !canNext(snap) {
			return m, nil
		}
		m.cursor = 0
		return m, m.list.NextPage()
	case m.keys.PrevPage, "left":
		if !canPrev(snap) {
			return m, nil
		}
		m.cursor = 0
		return m, m.list.PrevPage()
	case m.keys.Refresh:
		return m, m.list.Refetch()
	case m.keys.Logout:
		if err := m.session.Logout(m.ctx); err != nil {
			m.log.Error("logout failed", "error", err)
			m.status = "Logout failed: " + err.Error()
			return m, nil
		}
		m.loggedOut = true
		return m, tea.Quit
	}
	return m, nil
}

func canNext(s tasklist.Snapshot) bool { return !s.Loading && s.Query.Page < s.TotalPages }
func canPrev(s tasklist.Snapshot) bool { return s.Query.Page > 1 }

func nextFilter(cur service.Status) service.Status {
	for i, f := range filters {
		if f == cur {
			return filters[(i+1)%len(filters)]
		}
	}
	return ""
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// Run shows the view until the user quits or logs out.
func Run(m Model) (Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx)).Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}
