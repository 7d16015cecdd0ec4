// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Backend is the task service together with its login endpoint.
type Backend interface {
	service.Service
	auth.Authenticator
}

// Env is what a command runs against.
type Env struct {
	// Config is always provided (config dir, paths, settings).
	Config *config.Config

	// Backend is nil unless the command needs it.
	Backend Backend

	// Session is the persisted login.
	Session *auth.Session

	// Logger writes to stderr.
	Logger *slog.Logger

	// In is read for interactive prompts.
	In io.Reader
}

// controllerLogger is the logger handed to the list and session
// controllers. Commands print their own errors, so the controllers' copies
// only show up with --debug.
func (e *Env) controllerLogger() *slog.Logger {
	if e.Config.Debug {
		return e.Logger
	}
	return logging.Discard()
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored login.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// BackendUser is implemented by commands that call the backend without
// requiring a login first.
type BackendUser interface {
	NeedsBackend() bool
}

// NeedsBackend reports whether the dispatcher must build a Backend for c.
func NeedsBackend(c Command) bool {
	if c.NeedsAuth() {
		return true
	}
	b, ok := c.(BackendUser)
	return ok && b.NeedsBackend()
}

// SessionUser is implemented by commands that read or clear the stored
// session without calling the backend.
type SessionUser interface {
	NeedsSession() bool
}

// NeedsSession reports whether the dispatcher must load the config and open
// the session store for c.
func NeedsSession(c Command) bool {
	if NeedsBackend(c) {
		return true
	}
	s, ok := c.(SessionUser)
	return ok && s.NeedsSession()
}
