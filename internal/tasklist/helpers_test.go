package tasklist_test

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
	"taskboard/internal/tasklist"
	"taskboard/internal/testutil"
)

// run executes cmd inline and returns its message.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

// seed adds n pending tasks t01..tNN, oldest first.
func seed(svc *testutil.FakeService, n int) {
	for i := 1; i <= n; i++ {
		svc.AddTask(fmt.Sprintf("t%02d", i), fmt.Sprintf("Task %02d", i), service.StatusPending)
	}
}

// loadedList returns a list that has applied its first fetch.
func loadedList(t *testing.T, svc *testutil.FakeService, opts ...tasklist.Option) *tasklist.List {
	t.Helper()
	l := tasklist.NewList(svc, opts...)
	l.Update(run(t, l.Refetch()))
	return l
}

func ids(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func sameIDs(tasks []service.Task, want ...string) bool {
	got := ids(tasks)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
