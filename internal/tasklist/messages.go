package tasklist

import "taskboard/internal/service"

// FetchedMsg reports a completed list fetch. Seq identifies the fetch that
// produced it.
type FetchedMsg struct {
	Seq   uint64
	Query service.Query
	Page  service.Page
	Err   error
}

// SavedMsg reports a completed create or update.
type SavedMsg struct {
	Task    service.Task
	Created bool
	Err     error
}

// DeletedMsg reports a completed delete.
type DeletedMsg struct {
	ID  string
	Err error
}
