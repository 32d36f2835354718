package hotkeys

import (
	"fmt"
	"slices"
	"strings"

	"vibe/internal/actions"
)

// Config is the user's desired recording bindings. JSON names match the
// frontend settings form.
type Config struct {
	Enabled        bool   `yaml:"enabled" json:"enabled"`
	StartRecording string `yaml:"start_recording" json:"startRecordingHotkey"`
	StopRecording  string `yaml:"stop_recording" json:"stopRecordingHotkey"`
}

// Normalize returns c with surrounding whitespace removed from both shortcuts.
func (c Config) Normalize() Config {
	c.StartRecording = strings.TrimSpace(c.StartRecording)
	c.StopRecording = strings.TrimSpace(c.StopRecording)
	return c
}

// Validate rejects configurations that bind both actions to one shortcut.
// Shortcuts that parse are compared by key and modifier set, so spelling,
// case and modifier order differences of one combination still collide.
func (c Config) Validate() error {
	if sameShortcut(c.StartRecording, c.StopRecording) {
		return fmt.Errorf("%w: start %q and stop %q", ErrDuplicateShortcut, c.StartRecording, c.StopRecording)
	}
	return nil
}

func sameShortcut(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	pa, errA := ParseBinding(a)
	pb, errB := ParseBinding(b)
	if errA != nil || errB != nil || pa.key != pb.key || len(pa.modifiers) != len(pb.modifiers) {
		return false
	}
	for _, mod := range pa.modifiers {
		if !slices.Contains(pb.modifiers, mod) {
			return false
		}
	}
	return true
}

// ActionFor maps a fired shortcut to its action. Start is checked first.
func (c Config) ActionFor(shortcut string) (actions.Action, bool) {
	if shortcut == "" {
		return "", false
	}
	switch shortcut {
	case c.StartRecording:
		return actions.StartRecording, true
	case c.StopRecording:
		return actions.StopRecording, true
	}
	return "", false
}

type shortcutBinding struct {
	action   actions.Action
	shortcut string
}

// bindings lists the non-empty shortcuts in registration order.
func (c Config) bindings() []shortcutBinding {
	out := make([]shortcutBinding, 0, 2)
	if c.StartRecording != "" {
		out = append(out, shortcutBinding{actions.StartRecording, c.StartRecording})
	}
	if c.StopRecording != "" {
		out = append(out, shortcutBinding{actions.StopRecording, c.StopRecording})
	}
	return out
}
