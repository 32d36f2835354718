package main

import (
	"log/slog"

	"vibe/internal/hotkeys"
)

// RegisterHotkeys applies cfg without persisting it. A bind failure is also
// emitted as hotkey:registration-failed.
func (a *App) RegisterHotkeys(cfg hotkeys.Config) error {
	return a.applyHotkeyConfig(a.operationContext(), cfg)
}

// UnregisterHotkeys releases every recording hotkey.
func (a *App) UnregisterHotkeys() error {
	manager, err := a.requireHotkeys()
	if err != nil {
		return err
	}
	return manager.UnregisterHotkeys(a.operationContext())
}

// CheckHotkeyAvailability reports whether shortcut can currently be bound.
// The app's own live bindings are reported as available so the settings form
// does not flag the current shortcuts as taken.
func (a *App) CheckHotkeyAvailability(shortcut string) bool {
	manager, err := a.requireHotkeys()
	if err != nil {
		slog.Debug("[HOTKEY] availability check without manager", "error", err)
		return false
	}
	return manager.CheckAvailability(a.operationContext(), shortcut)
}

// GetRegisteredHotkeys returns shortcut -> action for live bindings.
func (a *App) GetRegisteredHotkeys() map[string]string {
	manager, err := a.requireHotkeys()
	if err != nil {
		return map[string]string{}
	}
	return manager.ListRegistered(a.operationContext())
}

// GetHotkeyConfig returns the active hotkey configuration, or nil when none
// is registered.
func (a *App) GetHotkeyConfig() *hotkeys.Config {
	manager, err := a.requireHotkeys()
	if err != nil {
		return nil
	}
	cfg, ok := manager.CurrentConfig()
	if !ok {
		return nil
	}
	return &cfg
}

// GetHotkeyState returns "registered" or "unregistered".
func (a *App) GetHotkeyState() string {
	manager, err := a.requireHotkeys()
	if err != nil {
		return hotkeys.StateUnregistered.String()
	}
	return manager.State().String()
}
