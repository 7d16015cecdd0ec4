package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldStatus
	fieldCount
)

// form holds the widgets of the create/edit form. The edit session owns the
// draft; the form is its on-screen copy.
type form struct {
	title       textinput.Model
	description textarea.Model
	status      service.Status
	focus       field
}

func newForm() form {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	ta := textarea.New()
	ta.Placeholder = "Description"
	ta.ShowLineNumbers = false
	ta.SetWidth(42)
	ta.SetHeight(4)
	ta.Cursor.SetMode(cursor.CursorStatic)

	return form{title: ti, description: ta, status: service.StatusPending}
}

// load shows in and focuses the title.
func (f *form) load(in service.TaskInput) {
	f.title.SetValue(in.Title)
	f.description.SetValue(in.Description)
	f.status = in.Status
	if !f.status.Valid() {
		f.status = service.StatusPending
	}
	f.setFocus(fieldTitle)
}

func (f *form) reset() {
	f.load(service.TaskInput{})
	f.title.Blur()
	f.description.Blur()
}

func (f form) input() service.TaskInput {
	return service.TaskInput{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      f.status,
	}
}

func (f *form) setFocus(to field) {
	f.focus = to
	f.title.Blur()
	f.description.Blur()
	switch to {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	}
}

func (f *form) next() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *form) prev() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

// multiline reports whether Enter belongs to the focused widget.
func (f form) multiline() bool { return f.focus == fieldDescription }

func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldStatus:
		switch msg.String() {
		case "right", "l", " ":
			f.status = f.status.Next()
		case "left", "h":
			f.status = prevStatus(f.status)
		}
	}
	return cmd
}

func prevStatus(s service.Status) service.Status {
	for i, st := range service.Statuses {
		if st == s {
			return service.Statuses[(i+len(service.Statuses)-1)%len(service.Statuses)]
		}
	}
	return service.StatusPending
}
