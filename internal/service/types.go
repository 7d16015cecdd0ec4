// Package service defines the backend-agnostic interface for task operations.
package service

import "fmt"

// Status is the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists the valid statuses in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the status after s in workflow order, wrapping around.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

// ParseStatus parses a status name. The empty string parses to the empty
// status, which means "no filter" in a Query.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st == "" || st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Task is the server's copy of a task. ID and CreatedAt are server-assigned.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// TaskInput holds the writable fields sent on create and update.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// Input returns the writable fields of t.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
}

// Page is one page of a task listing as reported by the backend.
type Page struct {
	Items []Task
	Total int
	Page  int
	Limit int
}
