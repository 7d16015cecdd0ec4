package commands

import (
	"context"
	"fmt"

	"taskboard/internal/service"
)

// lookupPageSize is the page size used when scanning for a task by id.
const lookupPageSize = 50

// findTaskByID pages through the task listing until it finds id. The REST
// API has no single-task endpoint.
func findTaskByID(ctx context.Context, svc service.Service, id string) (service.Task, error) {
	q := service.DefaultQuery()
	q.Limit = lookupPageSize

	for {
		page, err := svc.List(ctx, q)
		if err != nil {
			return service.Task{}, err
		}
		for _, t := range page.Items {
			if t.ID == id {
				return t, nil
			}
		}
		if len(page.Items) == 0 || q.Page >= service.TotalPages(page.Total, q.Limit) {
			return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
		}
		q.Page++
	}
}
