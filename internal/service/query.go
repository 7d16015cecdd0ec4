package service

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultPage is the first page; pages are 1-based.
	DefaultPage = 1

	// DefaultLimit is the page size used when none is configured.
	DefaultLimit = 5
)

// SortField names a column the backend can order by.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortTitle     SortField = "title"
	SortStatus    SortField = "status"
)

// ParseSortField parses a sort field name.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortCreatedAt, SortTitle, SortStatus:
		return f, nil
	}
	return "", fmt.Errorf("invalid sort field: %s", s)
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Reverse returns the opposite direction.
func (o Order) Reverse() Order {
	if o == Asc {
		return Desc
	}
	return Asc
}

// ParseOrder parses a sort direction.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case Asc, Desc:
		return o, nil
	}
	return "", fmt.Errorf("invalid order: %s", s)
}

// Query describes what a task listing should show.
// An empty Status means no status filter.
type Query struct {
	Page   int
	Limit  int
	Sort   SortField
	Order  Order
	Status Status
}

// DefaultQuery returns page 1 of 5 tasks, newest first, unfiltered.
func DefaultQuery() Query {
	return Query{
		Page:  DefaultPage,
		Limit: DefaultLimit,
		Sort:  SortCreatedAt,
		Order: Desc,
	}
}

// Normalize fills unset fields so q can be sent as is.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Sort == "" {
		q.Sort = SortCreatedAt
	}
	if q.Order == "" {
		q.Order = Desc
	}
	return q
}

// Values encodes q as URL query parameters. The status parameter is
// omitted when no filter is set.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("sort", string(q.Sort))
	v.Set("order", string(q.Order))
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return v
}

// TotalPages returns ceil(total/limit), never less than 1.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
