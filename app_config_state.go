package main

import "vibe/internal/config"

// getConfigSnapshot returns the config protected by cfgMu.
// All read access to App.cfg should go through this helper.
func (a *App) getConfigSnapshot() config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

// setConfigSnapshot stores cfg protected by cfgMu.
// All write access to App.cfg should go through this helper.
func (a *App) setConfigSnapshot(cfg config.Config) {
	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()
}
