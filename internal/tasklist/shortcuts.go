package tasklist

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// ShortcutKeys are the key strings (as produced by tea.KeyMsg.String) the
// edit form reacts to.
type ShortcutKeys struct {
	Save   []string
	Submit string
	Cancel string
}

// DefaultShortcutKeys maps Ctrl+S and Alt+S (the terminal's Cmd+S) to save,
// Enter to submit and Esc to cancel.
func DefaultShortcutKeys() ShortcutKeys {
	return ShortcutKeys{
		Save:   []string{"ctrl+s", "alt+s"},
		Submit: "enter",
		Cancel: "esc",
	}
}

// Shortcuts routes save/cancel keys to an EditSession. It is bound only
// while the session is open.
type Shortcuts struct {
	keys    ShortcutKeys
	session *EditSession
	bound   bool
}

func newShortcuts(s *EditSession, keys ShortcutKeys) *Shortcuts {
	def := DefaultShortcutKeys()
	if len(keys.Save) == 0 {
		keys.Save = def.Save
	}
	if keys.Submit == "" {
		keys.Submit = def.Submit
	}
	if keys.Cancel == "" {
		keys.Cancel = def.Cancel
	}
	return &Shortcuts{keys: keys, session: s}
}

// bind activates the shortcuts and returns the release func.
func (b *Shortcuts) bind() func() {
	b.bound = true
	return func() { b.bound = false }
}

// Active reports whether the shortcuts are bound.
func (b *Shortcuts) Active() bool { return b.bound }

// Handle runs the action for msg. multiline is true when focus is on a
// multi-line input, where Enter belongs to the input. handled=true means the
// key was consumed and must not reach the focused widget.
func (b *Shortcuts) Handle(msg tea.KeyMsg, multiline bool) (cmd tea.Cmd, handled bool) {
	if !b.bound {
		return nil, false
	}
	key := msg.String()
	switch {
	case slices.Contains(b.keys.Save, key):
		return b.session.Save(), true
	case key == b.keys.Submit && !multiline:
		return b.session.Save(), true
	case key == b.keys.Cancel:
		b.session.Close()
		return nil, true
	}
	return nil, false
}
