// Package mockapi is an in-memory implementation of the task service's REST
// API. It backs the mockserver command and the HTTP tests.
package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/service"
)

// createdAtLayout sorts lexically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// Server holds the tasks and the issued tokens.
type Server struct {
	mu     sync.Mutex
	tasks  []service.Task
	tokens map[string]string // token -> username
	users  map[string]string // username -> password; empty accepts anyone
	sample int

	now    func() time.Time
	log    *slog.Logger
	router *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithUser restricts logins to the registered users.
func WithUser(username, password string) Option {
	return func(s *Server) { s.users[username] = password }
}

// WithToken pre-issues a token for username.
func WithToken(token, username string) Option {
	return func(s *Server) { s.tokens[token] = username }
}

// WithTasks seeds the store.
func WithTasks(tasks ...service.Task) Option {
	return func(s *Server) { s.tasks = append(s.tasks, tasks...) }
}

// WithSampleTasks seeds n generated tasks, one minute apart, cycling
// through the statuses.
func WithSampleTasks(n int) Option {
	return func(s *Server) { s.sample = n }
}

// WithClock sets the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger logs every request at Info.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a Server.
func New(opts ...Option) *Server {
	s := &Server{
		tokens: make(map[string]string),
		users:  make(map[string]string),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seedSamples()

	router := gin.New()
	router.Use(gin.Recovery())
	if s.log != nil {
		router.Use(s.logRequests)
	}

	router.POST("/login", s.handleLogin)

	tasks := router.Group("/tasks", s.requireToken)
	{
		tasks.GET("", s.handleList)
		tasks.POST("", s.handleCreate)
		tasks.PUT("/:id", s.handleUpdate)
		tasks.DELETE("/:id", s.handleDelete)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Tasks returns a copy of the stored tasks.
func (s *Server) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

var sampleStatuses = []service.Status{service.StatusPending, service.StatusInProgress, service.StatusDone}

func (s *Server) seedSamples() {
	base := s.now().UTC().Add(-time.Duration(s.sample) * time.Minute)
	for i := range s.sample {
		s.tasks = append(s.tasks, service.Task{
			ID:        uuid.NewString(),
			Title:     fmt.Sprintf("Sample task %d", i+1),
			Status:    sampleStatuses[i%len(sampleStatuses)],
			CreatedAt: base.Add(time.Duration(i) * time.Minute).Format(createdAtLayout),
		})
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Info("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}

func (s *Server) requireToken(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.mu.Lock()
	_, known := s.tokens[token]
	s.mu.Unlock()
	if !ok || !known {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.Username == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) > 0 {
		if pw, ok := s.users[body.Username]; !ok || pw != body.Password {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
	}
	token := uuid.NewString()
	s.tokens[token] = body.Username
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleList(c *gin.Context) {
	q, errMsg := parseQuery(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	s.mu.Lock()
	var matched []service.Task
	for _, t := range s.tasks {
		if q.Status == "" || t.Status == q.Status {
			matched = append(matched, t)
		}
	}
	s.mu.Unlock()

	service.SortTasks(matched, q.Sort, q.Order)
	c.JSON(http.StatusOK, gin.H{
		"data": service.Paginate(matched, q),
		"meta": gin.H{
			"total": len(matched),
			"page":  q.Page,
			"limit": q.Limit,
		},
	})
}

func parseQuery(c *gin.Context) (service.Query, string) {
	q := service.DefaultQuery()

	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(q.Page)))
	if err != nil || page <= 0 {
		return q, "Invalid page value"
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(q.Limit)))
	if err != nil || limit <= 0 {
		return q, "Invalid limit value"
	}
	sort, err := service.ParseSortField(c.DefaultQuery("sort", string(q.Sort)))
	if err != nil {
		return q, "Invalid sort field"
	}
	order, err := service.ParseOrder(c.DefaultQuery("order", string(q.Order)))
	if err != nil {
		return q, "Invalid order value"
	}
	status, err := service.ParseStatus(c.Query("status"))
	if err != nil {
		return q, "Invalid status value"
	}

	q.Page, q.Limit, q.Sort, q.Order, q.Status = page, limit, sort, order, status
	return q, ""
}

// bindInput decodes and validates a task body. A missing status defaults
// to pending.
func bindInput(c *gin.Context) (service.TaskInput, bool) {
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return in, false
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return in, false
	}
	if in.Status == "" {
		in.Status = service.StatusPending
	}
	if !in.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of pending, in-progress, done"})
		return in, false
	}
	return in, true
}

func (s *Server) handleCreate(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	s.mu.Lock()
	task := service.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		CreatedAt:   s.now().UTC().Format(createdAtLayout),
	}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdate(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	s.tasks[i].Title = in.Title
	s.tasks[i].Description = in.Description
	s.tasks[i].Status = in.Status
	c.JSON(http.StatusOK, s.tasks[i])
}

func (s *Server) handleDelete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	c.Status(http.StatusNoContent)
}

func (s *Server) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
}
