// Package exitcode defines the process exit codes of the taskboard binary.
package exitcode

const (
	// Success: the command did what was asked.
	Success = 0

	// UserError covers bad arguments, unknown task ids and input the
	// server rejected with a message.
	UserError = 1

	// AuthError covers a missing or failed login and unreadable config or
	// session files.
	AuthError = 2

	// BackendError means the task service failed or could not be reached.
	BackendError = 3
)
