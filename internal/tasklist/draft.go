package tasklist

import "taskboard/internal/service"

// Target says what saving a Draft does: NewDraft creates, EditingDraft
// updates an existing task.
type Target interface {
	isTarget()
}

// NewDraft targets a task that does not exist yet.
type NewDraft struct{}

// EditingDraft targets the existing task with the given id.
type EditingDraft struct {
	ID string
}

func (NewDraft) isTarget()     {}
func (EditingDraft) isTarget() {}

// Draft is a task being composed in an edit session.
type Draft struct {
	Target Target
	Input  service.TaskInput
}

func blankDraft() Draft {
	return Draft{
		Target: NewDraft{},
		Input:  service.TaskInput{Status: service.StatusPending},
	}
}

// draftOf copies t, so edits never touch the result set.
func draftOf(t service.Task) Draft {
	return Draft{
		Target: EditingDraft{ID: t.ID},
		Input:  t.Input(),
	}
}

// EditingID returns the id of the task being edited, if any.
func (d Draft) EditingID() (string, bool) {
	e, ok := d.Target.(EditingDraft)
	return e.ID, ok
}
