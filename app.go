package main

import (
	"context"
	"sync"
	"sync/atomic"

	"vibe/internal/actions"
	"vibe/internal/config"
	"vibe/internal/hotkeys"
)

// App is the Wails-bound application service.
type App struct {
	// Runtime context lifecycle.
	ctx   context.Context
	ctxMu sync.RWMutex

	// Configuration state and startup warnings.
	// Lock ordering (outer -> inner):
	//   cfgSaveMu -> cfgMu
	//
	// Independent locks: ctxMu, startupWarnMu, watchMu, hotkeyUpdateMu.
	cfgMu              sync.RWMutex
	cfgSaveMu          sync.Mutex
	configEventVersion atomic.Uint64
	cfg                config.Config
	configPath         string
	startupWarnMu      sync.Mutex
	configLoadWarnings []string

	// Recording hotkeys. hotkeyHost is owned by the App and closed on shutdown.
	hotkeyHost hotkeys.Host
	hotkeys    *hotkeys.Manager
	actions    *actions.Bus
	actionSub  *actions.Subscription
	// hotkeyAppliedVersion is the newest config event reconciled with the
	// manager; guarded by hotkeyUpdateMu.
	hotkeyUpdateMu       sync.Mutex
	hotkeyAppliedVersion uint64

	shuttingDown atomic.Bool // set true at the start of shutdown(); checked by worker recovery loops

	// Background worker cancellation/waits.
	watchMu     sync.Mutex
	watchCancel context.CancelFunc
	bgCtx       context.Context
	bgCancel    context.CancelFunc
	bgWG        sync.WaitGroup
}

// NewApp creates the app service backed by OS global shortcuts.
func NewApp() *App {
	return newAppWithHost(hotkeys.NewSystemHost())
}

func newAppWithHost(host hotkeys.Host) *App {
	bus := actions.NewBus()
	return &App{
		hotkeyHost: host,
		hotkeys:    hotkeys.NewManager(host, bus),
		actions:    bus,
	}
}
