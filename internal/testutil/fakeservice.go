// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/service"
)

// BaseTime is the creation time of the first task added to a FakeService.
// Each later task is one minute newer.
var BaseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	RemoveErr error
	LoginErr  error

	// LoginToken is returned by Login; empty means "fake-token".
	LoginToken string

	// ListFunc, when set, replaces the in-memory listing.
	ListFunc func(ctx context.Context, q service.Query) (service.Page, error)

	// Call recording
	ListCalls    int
	CreateCalls  int
	UpdateCalls  int
	RemoveCalls  int
	LoginCalls   int
	LastUsername string
	Queries      []service.Query
	LastInput    service.TaskInput
	LastUpdateID string
	LastRemoveID string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task with a generated creation time and returns it.
func (f *FakeService) AddTask(id, title string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(id, service.TaskInput{Title: title, Status: status})
}

func (f *FakeService) addLocked(id string, in service.TaskInput) service.Task {
	created := BaseTime.Add(time.Duration(len(f.tasks)) * time.Minute)
	t := service.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		CreatedAt:   created.Format(time.RFC3339),
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks in insertion order.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, q service.Query) (service.Page, error) {
	f.mu.Lock()
	f.ListCalls++
	f.Queries = append(f.Queries, q)
	listFunc := f.ListFunc
	f.mu.Unlock()

	if listFunc != nil {
		return listFunc(ctx, q)
	}
	if f.ListErr != nil {
		return service.Page{}, f.ListErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []service.Task
	for _, t := range f.tasks {
		if q.Status == "" || t.Status == q.Status {
			matched = append(matched, t)
		}
	}
	service.SortTasks(matched, q.Sort, q.Order)
	return service.Page{
		Items: service.Paginate(matched, q),
		Total: len(matched),
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastInput = in

	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.nextID++
	return f.addLocked(fmt.Sprintf("new-%d", f.nextID), in), nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastInput = in
	f.LastUpdateID = id

	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Title = in.Title
			f.tasks[i].Description = in.Description
			f.tasks[i].Status = in.Status
			return f.tasks[i], nil
		}
	}
	return service.Task{}, &service.ValidationError{StatusCode: 404, Message: "task not found"}
}

// Remove implements service.Service.
func (f *FakeService) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemoveCalls++
	f.LastRemoveID = id

	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.ValidationError{StatusCode: 404, Message: "task not found"}
}

// Login implements auth.Authenticator.
func (f *FakeService) Login(ctx context.Context, username, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastUsername = username

	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	if f.LoginToken != "" {
		return f.LoginToken, nil
	}
	return "fake-token", nil
}
