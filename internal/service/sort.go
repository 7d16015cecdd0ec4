package service

import (
	"cmp"
	"slices"
	"strings"
)

// SortTasks orders tasks in place by field and order. Ties keep their
// original relative order.
func SortTasks(tasks []Task, field SortField, order Order) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		var c int
		switch field {
		case SortTitle:
			c = cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortStatus:
			c = cmp.Compare(a.Status, b.Status)
		default:
			c = cmp.Compare(a.CreatedAt, b.CreatedAt)
		}
		if order == Desc {
			return -c
		}
		return c
	})
}

// Paginate returns the slice of tasks on page q.Page of size q.Limit.
// Pages past the end are empty, not nil.
func Paginate(tasks []Task, q Query) []Task {
	q = q.Normalize()
	start := (q.Page - 1) * q.Limit
	if start >= len(tasks) {
		return []Task{}
	}
	end := min(start+q.Limit, len(tasks))
	return slices.Clone(tasks[start:end])
}
