package main

import (
	"fmt"
	"log/slog"
	"time"

	"vibe/internal/config"
	"vibe/internal/hotkeys"
)

type configUpdatedEvent struct {
	Config             config.Config `json:"config"`
	Version            uint64        `json:"version"`
	UpdatedAtUnixMilli int64         `json:"updated_at_unix_milli"`
}

// GetConfig returns loaded config.
func (a *App) GetConfig() config.Config {
	return a.getConfigSnapshot()
}

// GetConfigAndFlushWarnings returns loaded config and emits any pending startup warnings.
func (a *App) GetConfigAndFlushWarnings() config.Config {
	a.flushPendingConfigLoadWarnings()
	return a.getConfigSnapshot()
}

func (a *App) flushPendingConfigLoadWarnings() {
	ctx := a.runtimeContext()
	if ctx == nil {
		return
	}
	if warning := a.consumePendingConfigLoadWarning(); warning != "" {
		a.emitRuntimeEventWithContext(ctx, eventConfigLoadFailed, map[string]string{
			"message": warning,
		})
	}
}

// SaveConfig validates and persists cfg to disk, then updates in-memory config.
// The config:updated event carries the normalized config. When the hotkey
// section changed it is re-applied; a registration failure is returned after
// the config has been saved and the event emitted.
func (a *App) SaveConfig(cfg config.Config) error {
	event, err := a.saveConfigWithLock(cfg)
	if err != nil {
		return err
	}
	hotkeyErr := a.applyRuntimeConfigUpdate(event)
	// Concurrent saves are ordered by Version, and frontend consumers must
	// treat the highest version as authoritative.
	a.emitRuntimeEvent(eventConfigUpdated, event)
	if hotkeyErr != nil {
		return fmt.Errorf("config saved but hotkeys could not be applied: %w", hotkeyErr)
	}
	return nil
}

// saveConfigWithLock persists cfg, updates the in-memory snapshot, and bumps event version under cfgSaveMu.
func (a *App) saveConfigWithLock(cfg config.Config) (configUpdatedEvent, error) {
	a.cfgSaveMu.Lock()
	defer a.cfgSaveMu.Unlock()

	normalized, err := config.Save(a.configPath, cfg)
	if err != nil {
		return configUpdatedEvent{}, err
	}
	a.setConfigSnapshot(normalized)
	return a.newConfigUpdatedEvent(normalized), nil
}

func (a *App) newConfigUpdatedEvent(cfg config.Config) configUpdatedEvent {
	return configUpdatedEvent{
		Config:             cfg,
		Version:            a.configEventVersion.Add(1),
		UpdatedAtUnixMilli: time.Now().UnixMilli(),
	}
}

// applyRuntimeConfigUpdate brings the watcher and hotkeys in line with
// event.Config. Stale events from concurrent saves are skipped.
func (a *App) applyRuntimeConfigUpdate(event configUpdatedEvent) error {
	a.setConfigWatching(event.Config.WatchConfig)
	return a.applyRuntimeHotkeyUpdate(event)
}

func (a *App) applyRuntimeHotkeyUpdate(event configUpdatedEvent) error {
	a.hotkeyUpdateMu.Lock()
	defer a.hotkeyUpdateMu.Unlock()

	if event.Version <= a.hotkeyAppliedVersion {
		slog.Debug("[DEBUG-CONFIG] skipped stale hotkey update", "received", event.Version, "applied", a.hotkeyAppliedVersion)
		return nil
	}
	if a.hotkeysMatchLive(event.Config.Hotkeys) {
		a.hotkeyAppliedVersion = event.Version
		return nil
	}
	if err := a.applyHotkeyConfig(a.operationContext(), event.Config.Hotkeys); err != nil {
		return err
	}
	a.hotkeyAppliedVersion = event.Version
	return nil
}

// hotkeysMatchLive reports whether the manager already runs cfg. The bound
// RegisterHotkeys and UnregisterHotkeys change the manager without saving,
// so the live registration is the reference, not the last saved section.
func (a *App) hotkeysMatchLive(cfg hotkeys.Config) bool {
	manager, err := a.requireHotkeys()
	if err != nil {
		return false
	}
	if !cfg.Enabled {
		return manager.State() == hotkeys.StateUnregistered
	}
	live, ok := manager.CurrentConfig()
	return ok && manager.State() == hotkeys.StateRegistered && live == cfg.Normalize()
}
