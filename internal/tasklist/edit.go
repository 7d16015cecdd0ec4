package tasklist

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
)

// Messages shown when a save fails without a server explanation.
const (
	GenericSaveError = "An error occurred"
	UnknownSaveError = "An unknown error occurred"
)

// EditSession is the create/edit form state.
type EditSession struct {
	ctx  context.Context
	svc  service.Service
	list *List
	log  *slog.Logger

	draft   Draft
	open    bool
	saving  bool
	errMsg  string
	onClose []func()

	shortcuts *Shortcuts
}

// NewEditSession creates a closed session that refreshes list after saves.
func NewEditSession(svc service.Service, list *List, keys ShortcutKeys) *EditSession {
	s := &EditSession{
		ctx:  list.ctx,
		svc:  svc,
		list: list,
		log:  list.log,
	}
	s.shortcuts = newShortcuts(s, keys)
	return s
}

// Open starts editing a copy of task, or a blank pending task when task is nil.
func (s *EditSession) Open(task *service.Task) {
	if task != nil {
		s.draft = draftOf(*task)
	} else {
		s.draft = blankDraft()
	}
	s.errMsg = ""
	if s.open {
		return
	}
	s.open = true
	s.OnClose(s.shortcuts.bind())
}

// OnClose registers fn to run when the session closes. Hooks run once, in
// reverse registration order.
func (s *EditSession) OnClose(fn func()) {
	s.onClose = append(s.onClose, fn)
}

// Close discards the draft and runs the on-close hooks.
func (s *EditSession) Close() {
	if !s.open {
		return
	}
	s.open = false
	s.draft = Draft{}
	s.errMsg = ""

	hooks := s.onClose
	s.onClose = nil
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// IsOpen reports whether the form is shown.
func (s *EditSession) IsOpen() bool { return s.open }

// IsSaving reports whether a save is in flight.
func (s *EditSession) IsSaving() bool { return s.saving }

// ErrorMessage returns the message of the last failed save.
func (s *EditSession) ErrorMessage() string { return s.errMsg }

// Draft returns the current draft.
func (s *EditSession) Draft() Draft { return s.draft }

// SetInput replaces the draft's fields. The target is unchanged.
func (s *EditSession) SetInput(in service.TaskInput) {
	if !s.open {
		return
	}
	s.draft.Input = in
}

// Shortcuts returns the key binder tied to this session.
func (s *EditSession) Shortcuts() *Shortcuts { return s.shortcuts }

// Save creates or updates the draft. It returns nil when the session is
// closed or a save is already running.
func (s *EditSession) Save() tea.Cmd {
	if !s.open || s.saving {
		return nil
	}
	s.saving = true

	ctx, svc, d := s.ctx, s.svc, s.draft
	return func() tea.Msg {
		if id, ok := d.EditingID(); ok {
			task, err := svc.Update(ctx, id, d.Input)
			return SavedMsg{Task: task, Err: err}
		}
		task, err := svc.Create(ctx, d.Input)
		return SavedMsg{Task: task, Created: true, Err: err}
	}
}

// Update applies a SavedMsg. On success it closes the session and returns
// the list refetch; on failure the session stays open with an error message.
func (s *EditSession) Update(msg tea.Msg) (tea.Cmd, bool) {
	m, ok := msg.(SavedMsg)
	if !ok {
		return nil, false
	}
	s.saving = false

	if m.Err != nil {
		s.log.Error("failed to save task", "error", m.Err)
		if s.open {
			s.errMsg = SaveErrorMessage(m.Err)
		}
		return nil, true
	}

	cmd := s.list.Refetch()
	s.Close()
	return cmd, true
}

// SaveErrorMessage returns the text shown for a failed save: the server's
// own message when it sent one.
func SaveErrorMessage(err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	var terr *service.TransportError
	if errors.As(err, &terr) && terr.HasResponse() {
		return GenericSaveError
	}
	return UnknownSaveError
}
