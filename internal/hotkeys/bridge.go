package hotkeys

import (
	"context"
	"log/slog"

	"vibe/internal/actions"
)

// handleTrigger maps a fired shortcut to its action and publishes it. regCtx
// is the registration the callback was created for.
func (m *Manager) handleTrigger(regCtx context.Context, shortcut string) {
	if regCtx.Err() != nil {
		slog.Debug("[HOTKEY] trigger after release ignored", "shortcut", shortcut)
		return
	}

	m.mu.Lock()
	var cfg Config
	have := m.cfg != nil
	if have {
		cfg = *m.cfg
	}
	m.mu.Unlock()

	if !have {
		slog.Debug("[HOTKEY] trigger without configuration ignored", "shortcut", shortcut)
		return
	}
	action, ok := cfg.ActionFor(shortcut)
	if !ok {
		slog.Debug("[HOTKEY] trigger for unknown shortcut ignored", "shortcut", shortcut)
		return
	}
	if m.publisher == nil {
		return
	}
	m.publisher.Publish(actions.NewEvent(action, shortcut))
}
