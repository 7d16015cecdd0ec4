// Package tasklist holds the state behind the task list view: the list
// controller, the edit and delete sessions, and the edit shortcut binder.
//
// Everything here is owned by a single goroutine (the Bubble Tea update
// loop). Actions mutate state immediately and return a tea.Cmd that performs
// the backend call; the command's message is fed back through Update.
package tasklist

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
)

// ResultSet is the last successfully fetched page.
type ResultSet struct {
	Items      []service.Task
	Total      int
	TotalPages int
}

// Snapshot is a read-only copy of the list state for rendering.
type Snapshot struct {
	Query      service.Query
	Items      []service.Task
	Total      int
	TotalPages int
	Loading    bool
}

// List owns the query and the result set.
type List struct {
	ctx    context.Context
	svc    service.Service
	log    *slog.Logger
	query  service.Query
	result ResultSet

	seq     uint64 // last issued fetch
	pending int

	lastCompletionWins bool
}

// Option configures a List.
type Option func(*List)

// WithContext sets the context backend calls run under.
func WithContext(ctx context.Context) Option {
	return func(l *List) { l.ctx = ctx }
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(log *slog.Logger) Option {
	return func(l *List) { l.log = log }
}

// WithQuery replaces the default initial query.
func WithQuery(q service.Query) Option {
	return func(l *List) { l.query = q.Normalize() }
}

// WithLastCompletionWins applies every fetch result in completion order,
// even when a newer fetch has already been issued.
func WithLastCompletionWins() Option {
	return func(l *List) { l.lastCompletionWins = true }
}

// NewList creates a List with the default query and an empty result set.
func NewList(svc service.Service, opts ...Option) *List {
	l := &List{
		ctx:    context.Background(),
		svc:    svc,
		log:    slog.New(slog.DiscardHandler),
		query:  service.DefaultQuery(),
		result: ResultSet{TotalPages: 1},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Query returns the current query.
func (l *List) Query() service.Query { return l.query }

// Result returns the last applied result set.
func (l *List) Result() ResultSet {
	r := l.result
	r.Items = append([]service.Task(nil), l.result.Items...)
	return r
}

// Loading reports whether any issued fetch has not completed yet.
func (l *List) Loading() bool { return l.pending > 0 }

// Snapshot returns a copy of the state for rendering.
func (l *List) Snapshot() Snapshot {
	r := l.Result()
	return Snapshot{
		Query:      l.query,
		Items:      r.Items,
		Total:      r.Total,
		TotalPages: r.TotalPages,
		Loading:    l.Loading(),
	}
}

// SetFilter filters by status (empty clears the filter) and returns to page 1.
func (l *List) SetFilter(status service.Status) tea.Cmd {
	l.query.Status = status
	l.query.Page = 1
	return l.Refetch()
}

// ChangeSort reverses the order when field is already the sort column,
// otherwise sorts ascending by field. The page is kept.
func (l *List) ChangeSort(field service.SortField) tea.Cmd {
	if l.query.Sort == field {
		l.query.Order = l.query.Order.Reverse()
	} else {
		l.query.Sort = field
		l.query.Order = service.Asc
	}
	return l.Refetch()
}

// NextPage advances one page. It does not look at TotalPages; a page past
// the end simply comes back empty.
func (l *List) NextPage() tea.Cmd {
	if l.query.Page < 1 {
		l.query.Page = 1
	}
	l.query.Page++
	return l.Refetch()
}

// PrevPage goes back one page. It is a no-op on page 1.
func (l *List) PrevPage() tea.Cmd {
	if l.query.Page <= 1 {
		return nil
	}
	l.query.Page--
	return l.Refetch()
}

// Refetch issues a fetch for the current query.
func (l *List) Refetch() tea.Cmd {
	l.query = l.query.Normalize()
	l.seq++
	l.pending++

	ctx, svc, q, seq := l.ctx, l.svc, l.query, l.seq
	return func() tea.Msg {
		page, err := svc.List(ctx, q)
		return FetchedMsg{Seq: seq, Query: q, Page: page, Err: err}
	}
}

// Update applies a FetchedMsg. It reports whether msg was one.
func (l *List) Update(msg tea.Msg) bool {
	m, ok := msg.(FetchedMsg)
	if !ok {
		return false
	}
	if l.pending > 0 {
		l.pending--
	}

	if m.Err != nil {
		l.log.Error("failed to load tasks",
			"page", m.Query.Page,
			"limit", m.Query.Limit,
			"sort", string(m.Query.Sort),
			"order", string(m.Query.Order),
			"status", string(m.Query.Status),
			"error", m.Err)
		return true
	}
	if m.Seq != l.seq && !l.lastCompletionWins {
		l.log.Debug("discarding stale task page", "seq", m.Seq, "latest", l.seq)
		return true
	}

	l.result = ResultSet{
		Items:      append([]service.Task(nil), m.Page.Items...),
		Total:      m.Page.Total,
		TotalPages: service.TotalPages(m.Page.Total, m.Query.Limit),
	}
	return true
}
