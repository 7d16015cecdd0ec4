package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by backend errors for unknown task ids.
var ErrNotFound = errors.New("not found")

// TransportError reports a request that failed on the network or came back
// with a non-2xx status and no explanation in the body.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int // 0 when no response arrived
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %d %s: %v", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *TransportError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// HasResponse reports whether the server answered at all.
func (e *TransportError) HasResponse() bool { return e.StatusCode != 0 }

// ValidationError is a failure the server explained through the "error"
// field of the response body.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
