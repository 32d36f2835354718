package main

import (
	"context"
	"log/slog"

	"vibe/internal/config"
	"vibe/internal/workerutil"
)

// setConfigWatching starts or stops the config file watcher. It is a no-op
// before startup and during shutdown.
func (a *App) setConfigWatching(enabled bool) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	if !enabled {
		if a.watchCancel != nil {
			a.watchCancel()
			a.watchCancel = nil
			slog.Debug("[DEBUG-CONFIG] config watcher stopped")
		}
		return
	}
	if a.watchCancel != nil || a.bgCtx == nil || a.shuttingDown.Load() {
		return
	}

	ctx, cancel := context.WithCancel(a.bgCtx)
	a.watchCancel = cancel
	path := a.configPath
	workerutil.RunWithPanicRecovery(ctx, "config-watcher", &a.bgWG, func(ctx context.Context) {
		if err := configWatchFn(ctx, path, a.handleExternalConfigChange); err != nil {
			slog.Warn("[WARN-CONFIG] config watcher stopped", "path", path, "error", err)
		}
	}, workerutil.RecoveryOptions{
		IsShutdown: a.shuttingDown.Load,
		OnPanic: func(worker string, _ int) {
			a.emitRuntimeEvent(eventWorkerPanic, map[string]any{"worker": worker})
		},
	})
}

// handleExternalConfigChange adopts a config edited outside the app. Writes
// made by SaveConfig come back here too and are ignored when nothing changed.
func (a *App) handleExternalConfigChange(cfg config.Config) {
	event, changed := a.adoptConfigWithLock(cfg)
	if !changed {
		slog.Debug("[DEBUG-CONFIG] config file event without changes ignored")
		return
	}
	if err := a.applyRuntimeConfigUpdate(event); err != nil {
		runtimeLogger.Warningf(a.runtimeContext(), "hotkeys from edited config could not be applied: %v", err)
	}
	a.emitRuntimeEvent(eventConfigUpdated, event)
}

func (a *App) adoptConfigWithLock(cfg config.Config) (configUpdatedEvent, bool) {
	a.cfgSaveMu.Lock()
	defer a.cfgSaveMu.Unlock()

	if a.getConfigSnapshot() == cfg {
		return configUpdatedEvent{}, false
	}
	a.setConfigSnapshot(cfg)
	return a.newConfigUpdatedEvent(cfg), true
}
