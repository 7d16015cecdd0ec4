package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
	"taskboard/internal/testutil"
)

type fakeSession struct {
	name      string
	loggedOut bool
	err       error
}

func (s *fakeSession) Username(ctx context.Context) string { return s.name }

func (s *fakeSession) Logout(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.loggedOut = true
	return nil
}

func newTestModel(t *testing.T, svc *testutil.FakeService, session *fakeSession) Model {
	t.Helper()
	if session == nil {
		session = &fakeSession{name: "alice"}
	}
	m := New(context.Background(), svc, session, config.DefaultSettings(), logging.Discard())
	m.loc = time.UTC
	return applyCmd(t, m, m.list.Refetch())
}

// applyMsg feeds msg to Update and runs the resulting commands.
func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

// applyCmd runs cmd and feeds its messages back until nothing is left.
func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	current := cmd
	for i := 0; i < 6 && current != nil; i++ {
		msg := current()
		if _, ok := msg.(tea.QuitMsg); ok {
			return out
		}
		updated, next := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		current = next
	}
	return out
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seedN(svc *testutil.FakeService, n int) {
	for i := 1; i <= n; i++ {
		svc.AddTask(fmt.Sprintf("t%02d", i), fmt.Sprintf("Task %02d", i), service.StatusPending)
	}
}

func TestModel_RendersList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Write report", service.StatusInProgress)
	m := newTestModel(t, svc, nil)

	view := m.View()
	for _, want := range []string{"signed in as alice", "Write report", "in-progress", "2025-01-01 09:00", "Page 1 of 1", "showing 1 of 1", "Created ↓"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_EmptyState(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService(), nil)
	if !strings.Contains(m.View(), "No tasks found") {
		t.Errorf("expected empty state:\n%s", m.View())
	}
}

func TestModel_AddTask(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('a'))
	if !m.edit.IsOpen() || !strings.Contains(m.View(), "New Task") {
		t.Fatal("expected the new task form")
	}
	m = applyMsg(t, m, keyText("Buy milk"))
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if svc.CreateCalls != 1 {
		t.Fatalf("expected 1 create, got %d", svc.CreateCalls)
	}
	if got := svc.LastInput; got.Title != "Buy milk" || got.Status != service.StatusPending {
		t.Errorf("unexpected create input %+v", got)
	}
	if m.edit.IsOpen() {
		t.Error("expected form closed after save")
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Errorf("expected the new task listed:\n%s", m.View())
	}
	if m.status != "Task created" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_EditTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Write report", service.StatusPending)
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('e'))
	if !strings.Contains(m.View(), "Edit Task") {
		t.Fatal("expected the edit form")
	}
	// Move to the status field and advance it.
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if svc.UpdateCalls != 1 || svc.LastUpdateID != "a1" {
		t.Fatalf("expected update of a1, got %d calls id=%q", svc.UpdateCalls, svc.LastUpdateID)
	}
	if svc.LastInput.Status != service.StatusInProgress || svc.LastInput.Title != "Write report" {
		t.Errorf("unexpected update input %+v", svc.LastInput)
	}
}

func TestModel_EnterInDescriptionDoesNotSave(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = applyMsg(t, m, keyText("line one"))
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = applyMsg(t, m, keyText("line two"))

	if svc.CreateCalls != 0 {
		t.Fatalf("enter in the description saved the task")
	}
	if got := m.form.description.Value(); got != "line one\nline two" {
		t.Errorf("description = %q", got)
	}
}

func TestModel_EscapeClosesForm(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService(), nil)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.edit.IsOpen() {
		t.Fatal("expected esc to close the form")
	}

	// With the form closed, list keys work again.
	m = applyMsg(t, m, keyRune('a'))
	if !m.edit.IsOpen() {
		t.Error("expected add key to reopen the form")
	}
	if m.form.title.Value() != "" {
		t.Errorf("expected a blank form, got %q", m.form.title.Value())
	}
}

func TestModel_SaveFailureShowsMessage(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = &service.ValidationError{StatusCode: 400, Message: "Title is required"}
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.edit.IsOpen() {
		t.Fatal("expected the form to stay open")
	}
	if !strings.Contains(m.View(), "Title is required") {
		t.Errorf("expected the server message:\n%s", m.View())
	}
}

func TestModel_DeleteTask(t *testing.T) {
	svc := testutil.NewFakeService()
	seedN(svc, 2)
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('d'))
	if !strings.Contains(m.View(), `Delete "Task 02"?`) {
		t.Fatalf("expected delete confirmation:\n%s", m.View())
	}
	m = applyMsg(t, m, keyRune('y'))

	if svc.LastRemoveID != "t02" {
		t.Errorf("removed %q, want t02", svc.LastRemoveID)
	}
	if m.del.IsOpen() {
		t.Error("expected confirmation closed")
	}
	if strings.Contains(m.View(), "Task 02") {
		t.Errorf("deleted task still listed:\n%s", m.View())
	}
}

func TestModel_DeleteFailureNotice(t *testing.T) {
	svc := testutil.NewFakeService()
	seedN(svc, 1)
	svc.RemoveErr = errors.New("boom")
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if !strings.Contains(m.View(), tasklist.DeleteFailedNotice) {
		t.Fatalf("expected failure notice:\n%s", m.View())
	}

	// The notice blocks other keys.
	m = applyMsg(t, m, keyRune('a'))
	if m.edit.IsOpen() {
		t.Error("add opened behind the notice")
	}

	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.del.Notice() != "" {
		t.Error("expected notice dismissed")
	}
	if !m.del.IsOpen() {
		t.Error("expected confirmation to stay open after a failure")
	}
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.del.IsOpen() {
		t.Error("expected esc to cancel")
	}
}

func TestModel_Paging(t *testing.T) {
	svc := testutil.NewFakeService()
	seedN(svc, 7)
	m := newTestModel(t, svc, nil)

	if !strings.Contains(m.View(), "Page 1 of 2") {
		t.Fatalf("expected 2 pages:\n%s", m.View())
	}
	m = applyMsg(t, m, keyRune('p'))
	if svc.ListCalls != 1 {
		t.Errorf("prev on page 1 fetched")
	}

	m = applyMsg(t, m, keyRune('n'))
	if !strings.Contains(m.View(), "Page 2 of 2 • showing 2 of 7") {
		t.Fatalf("expected page 2:\n%s", m.View())
	}

	calls := svc.ListCalls
	m = applyMsg(t, m, keyRune('n'))
	if svc.ListCalls != calls {
		t.Error("next on the last page fetched")
	}
}

func TestModel_NextDisabledWhileLoading(t *testing.T) {
	svc := testutil.NewFakeService()
	seedN(svc, 12)
	m := newTestModel(t, svc, nil)

	updated, cmd := m.Update(keyRune('r'))
	m = updated.(Model)
	if cmd == nil || !m.list.Loading() {
		t.Fatal("expected a refresh in flight")
	}
	if _, next := m.Update(keyRune('n')); next != nil {
		t.Error("next should be ignored while loading")
	}
}

func TestModel_SortAndFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("b", "banana", service.StatusDone)
	svc.AddTask("a", "apple", service.StatusPending)
	m := newTestModel(t, svc, nil)

	m = applyMsg(t, m, keyRune('1'))
	if q := m.list.Query(); q.Sort != service.SortTitle || q.Order != service.Asc {
		t.Fatalf("unexpected query %+v", q)
	}
	if !strings.Contains(m.View(), "Title ↑") {
		t.Errorf("expected ascending indicator on Title:\n%s", m.View())
	}
	if got := m.list.Result().Items[0].ID; got != "a" {
		t.Errorf("first item = %s, want a", got)
	}

	m = applyMsg(t, m, keyRune('f'))
	if got := m.list.Query().Status; got != service.StatusPending {
		t.Errorf("filter = %q, want pending", got)
	}
	if !strings.Contains(m.View(), "[pending]") {
		t.Errorf("expected active filter shown:\n%s", m.View())
	}
}

func TestModel_Logout(t *testing.T) {
	session := &fakeSession{name: "alice"}
	m := newTestModel(t, testutil.NewFakeService(), session)

	updated, cmd := m.Update(keyRune('L'))
	m = updated.(Model)
	if !session.loggedOut || !m.LoggedOut() {
		t.Fatal("expected logout")
	}
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_LogoutFailure(t *testing.T) {
	session := &fakeSession{name: "alice", err: errors.New("disk full")}
	m := newTestModel(t, testutil.NewFakeService(), session)

	m = applyMsg(t, m, keyRune('L'))
	if m.LoggedOut() {
		t.Error("should not be logged out")
	}
	if !strings.Contains(m.View(), "Logout failed: disk full") {
		t.Errorf("expected failure status:\n%s", m.View())
	}
}

func TestFormatCreated(t *testing.T) {
	if got := formatCreated("2025-03-04T05:06:07.000Z", time.UTC); got != "2025-03-04 05:06" {
		t.Errorf("formatCreated() = %q", got)
	}
	if got := formatCreated("yesterday", time.UTC); got != "yesterday" {
		t.Errorf("unparseable input changed to %q", got)
	}
}

func TestPad(t *testing.T) {
	if got := pad("abc", 5); got != "abc  " {
		t.Errorf("pad() = %q", got)
	}
	if got := pad("abcdef", 4); got != "abc…" {
		t.Errorf("pad() = %q", got)
	}
}
