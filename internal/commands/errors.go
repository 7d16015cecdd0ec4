package commands

import (
	"errors"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

// exitCodeFor maps a backend error to an exit code. Errors the server
// explained, and unknown ids, are the user's to fix.
func exitCodeFor(err error) int {
	var verr *service.ValidationError
	if errors.Is(err, service.ErrNotFound) || errors.As(err, &verr) {
		return exitcode.UserError
	}
	return exitcode.BackendError
}

// reportBackendError prints err and returns its exit code. id names the
// task involved, if any.
func reportBackendError(errOut io.Writer, id string, err error) int {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound) && id != "":
		fmt.Fprintf(errOut, "error: task not found: %s\n", id)
	case errors.As(err, &verr):
		fmt.Fprintf(errOut, "error: %s\n", verr.Message)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return exitCodeFor(err)
}
