package tasklist

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
)

// DeleteFailedNotice is the blocking notice raised when a delete fails.
const DeleteFailedNotice = "Failed to delete task"

// DeleteSession is the delete confirmation state.
type DeleteSession struct {
	ctx  context.Context
	svc  service.Service
	list *List
	log  *slog.Logger

	candidate *service.Task
	open      bool
	deleting  bool
	notice    string
}

// NewDeleteSession creates a closed session that refreshes list after deletes.
func NewDeleteSession(svc service.Service, list *List) *DeleteSession {
	return &DeleteSession{
		ctx:  list.ctx,
		svc:  svc,
		list: list,
		log:  list.log,
	}
}

// Open asks for confirmation to delete task.
func (s *DeleteSession) Open(task service.Task) {
	s.candidate = &task
	s.open = true
}

// Close drops the candidate.
func (s *DeleteSession) Close() {
	s.candidate = nil
	s.open = false
}

// IsOpen reports whether the confirmation is shown.
func (s *DeleteSession) IsOpen() bool { return s.open }

// IsDeleting reports whether a delete is in flight.
func (s *DeleteSession) IsDeleting() bool { return s.deleting }

// Candidate returns the task pending deletion.
func (s *DeleteSession) Candidate() (service.Task, bool) {
	if s.candidate == nil {
		return service.Task{}, false
	}
	return *s.candidate, true
}

// Notice returns the pending failure notice, empty when there is none.
func (s *DeleteSession) Notice() string { return s.notice }

// DismissNotice acknowledges the failure notice.
func (s *DeleteSession) DismissNotice() { s.notice = "" }

// Confirm deletes the candidate. It returns nil without a candidate or
// while a delete is already running.
func (s *DeleteSession) Confirm() tea.Cmd {
	if s.candidate == nil || s.deleting {
		return nil
	}
	s.deleting = true

	ctx, svc, id := s.ctx, s.svc, s.candidate.ID
	return func() tea.Msg {
		return DeletedMsg{ID: id, Err: svc.Remove(ctx, id)}
	}
}

// Update applies a DeletedMsg. On success it closes the session and returns
// the list refetch; on failure it raises the notice and stays open.
func (s *DeleteSession) Update(msg tea.Msg) (tea.Cmd, bool) {
	m, ok := msg.(DeletedMsg)
	if !ok {
		return nil, false
	}
	s.deleting = false

	if m.Err != nil {
		s.log.Error("failed to delete task", "id", m.ID, "error", m.Err)
		s.notice = DeleteFailedNotice
		return nil, true
	}

	cmd := s.list.Refetch()
	s.Close()
	return cmd, true
}
