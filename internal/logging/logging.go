// Package logging builds the slog loggers used by the commands and the
// interactive view.
package logging

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// New returns a text logger on w. It logs at Warn, or Debug when debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ToFile returns a logger for the interactive view. The terminal belongs to
// the view, so logs go to path, and only when debug is set. The returned
// close func must be called on exit.
func ToFile(path string, debug bool) (*slog.Logger, func() error, error) {
	if !debug {
		return Discard(), func() error { return nil }, nil
	}
	f, err := tea.LogToFile(path, "taskboard")
	if err != nil {
		return nil, nil, err
	}
	return New(f, true), f.Close, nil
}
