// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Every call is a round trip; implementations do not cache or retry.
type Service interface {
	// List returns one page of tasks ordered and filtered per q.
	// A page past the end returns no items and the real total.
	List(ctx context.Context, q Query) (Page, error)

	// Create stores a new task. The server assigns ID and CreatedAt.
	Create(ctx context.Context, in TaskInput) (Task, error)

	// Update replaces the writable fields of the task with the given id.
	Update(ctx context.Context, id string, in TaskInput) (Task, error)

	// Remove deletes a task. Unknown ids fail with an error matching ErrNotFound.
	Remove(ctx context.Context, id string) error
}
