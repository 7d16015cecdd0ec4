// Package restapi implements the service.Service interface over the task
// service's REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"taskboard/internal/auth"
	"taskboard/internal/service"
)

// DefaultBaseURL is the hosted task service.
const DefaultBaseURL = "https://mileapp-test-mock-api-production.up.railway.app/"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

// Client implements service.Service using the REST API.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a client for baseURL. Requests carry the bearer token from src
// whenever it has one. A zero timeout means no client-side timeout.
func New(baseURL string, src oauth2.TokenSource, timeout time.Duration) (*Client, error) {
	httpClient := &http.Client{
		Transport: &bearerTransport{src: src, base: http.DefaultTransport},
		Timeout:   timeout,
	}
	return NewWithHTTPClient(baseURL, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	return &Client{base: u, http: httpClient}, nil
}

// bearerTransport adds "Authorization: Bearer <token>" when the source has a
// token and sends the request untouched when it does not.
type bearerTransport struct {
	src  oauth2.TokenSource
	base http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.src == nil {
		return t.base.RoundTrip(req)
	}
	tok, err := t.src.Token()
	if errors.Is(err, auth.ErrNoToken) {
		return t.base.RoundTrip(req)
	}
	if err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	r := req.Clone(req.Context())
	tok.SetAuthHeader(r)
	return t.base.RoundTrip(r)
}

type listResponse struct {
	Data []service.Task `json:"data"`
	Meta struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
	} `json:"meta"`
}

// List fetches one page of tasks.
func (c *Client) List(ctx context.Context, q service.Query) (service.Page, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, q.Values(), nil, &resp, "tasks"); err != nil {
		return service.Page{}, err
	}
	items := resp.Data
	if items == nil {
		items = []service.Task{}
	}
	return service.Page{
		Items: items,
		Total: resp.Meta.Total,
		Page:  resp.Meta.Page,
		Limit: resp.Meta.Limit,
	}, nil
}

// Create creates a task and returns the server's copy.
func (c *Client) Create(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, nil, in, &task, "tasks"); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Update replaces the writable fields of task id.
func (c *Client) Update(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPut, nil, in, &task, "tasks", url.PathEscape(id)); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Remove deletes task id.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, nil, nil, nil, "tasks", url.PathEscape(id))
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, nil, body, &resp, "login"); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response has no token")
	}
	return resp.Token, nil
}

// do sends one request. Non-2xx responses become a *service.ValidationError
// when the body has an "error" message, else a *service.TransportError.
func (c *Client) do(ctx context.Context, method string, query url.Values, body, out any, path ...string) error {
	u := c.base.JoinPath(path...)
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.TransportError{Method: method, Path: u.Path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			return &service.ValidationError{StatusCode: resp.StatusCode, Message: eb.Error}
		}
		return &service.TransportError{Method: method, Path: u.Path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.TransportError{
			Method:     method,
			Path:       u.Path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}
