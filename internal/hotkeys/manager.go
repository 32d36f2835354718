package hotkeys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"vibe/internal/actions"
)

// State is the registration state of a Manager.
type State int

const (
	StateUnregistered State = iota
	StateRegistered
)

func (s State) String() string {
	if s == StateRegistered {
		return "registered"
	}
	return "unregistered"
}

// Publisher receives action events produced by fired shortcuts.
type Publisher interface {
	Publish(actions.Event) int
}

// Manager owns the recording hotkey configuration and its host registration.
type Manager struct {
	host      Host
	publisher Publisher

	// opMu serializes register/unregister. mu guards the fields below and is
	// never held across host calls.
	opMu sync.Mutex
	mu   sync.Mutex

	cfg        *Config
	registered bool
	release    context.CancelFunc
}

// NewManager creates a manager bound to host. A nil publisher drops events.
func NewManager(host Host, publisher Publisher) *Manager {
	return &Manager{host: host, publisher: publisher}
}

// RegisterHotkeys replaces the current bindings with cfg. A disabled cfg
// behaves like UnregisterHotkeys.
func (m *Manager) RegisterHotkeys(ctx context.Context, cfg Config) error {
	if !cfg.Enabled {
		return m.UnregisterHotkeys(ctx)
	}
	if m.host == nil {
		return errHostUnavailable
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		slog.Warn("[HOTKEY] rejected hotkey configuration", "error", err)
		return err
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.unregisterLocked(ctx); err != nil {
		slog.Warn("[HOTKEY] failed to clear previous hotkeys, continuing", "error", err)
	}

	regCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	for _, b := range cfg.bindings() {
		onTrigger := func(shortcut string) { m.handleTrigger(regCtx, shortcut) }
		if err := m.host.Bind(ctx, b.shortcut, string(b.action), onTrigger); err != nil {
			cancel()
			bindErr := newBindError(b.action, b.shortcut, err)
			slog.Error("[HOTKEY] hotkey registration failed",
				"action", b.action, "shortcut", b.shortcut, "needsPermission", bindErr.NeedsPermission, "error", err)
			if rbErr := m.host.UnbindAll(context.WithoutCancel(ctx)); rbErr != nil {
				slog.Warn("[HOTKEY] rollback after failed registration failed", "error", rbErr)
				return errors.Join(bindErr, fmt.Errorf("rollback hotkeys: %w", rbErr))
			}
			return bindErr
		}
		slog.Debug("[HOTKEY] bound shortcut", "action", b.action, "shortcut", b.shortcut)
	}

	stored := cfg
	m.mu.Lock()
	m.cfg = &stored
	m.registered = true
	m.release = cancel
	m.mu.Unlock()

	slog.Info("[HOTKEY] hotkeys registered",
		"start", cfg.StartRecording, "stop", cfg.StopRecording)
	return nil
}

// UnregisterHotkeys releases all bindings. Local state is cleared even when
// the host reports an error.
func (m *Manager) UnregisterHotkeys(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.unregisterLocked(ctx)
}

// unregisterLocked requires opMu.
func (m *Manager) unregisterLocked(ctx context.Context) error {
	m.mu.Lock()
	if !m.registered && m.release == nil {
		m.mu.Unlock()
		return nil
	}
	release := m.release
	m.release = nil
	m.cfg = nil
	m.registered = false
	m.mu.Unlock()

	if release != nil {
		release()
	}
	if m.host == nil {
		return nil
	}
	if err := m.host.UnbindAll(ctx); err != nil {
		slog.Warn("[HOTKEY] failed to unregister hotkeys", "error", err)
		return fmt.Errorf("unregister hotkeys: %w", err)
	}
	slog.Info("[HOTKEY] hotkeys unregistered")
	return nil
}

// CheckAvailability reports whether shortcut can be bound. A shortcut this
// manager already holds counts as available. Blank input and host errors
// yield false.
func (m *Manager) CheckAvailability(ctx context.Context, shortcut string) bool {
	shortcut = strings.TrimSpace(shortcut)
	if shortcut == "" || m.host == nil {
		return false
	}
	ok, err := m.host.QueryAvailable(ctx, shortcut)
	if err != nil {
		slog.Warn("[HOTKEY] availability check failed", "shortcut", shortcut, "error", err)
		return false
	}
	return ok
}

// ListRegistered returns the host's shortcut -> action table. Never nil.
func (m *Manager) ListRegistered(ctx context.Context) map[string]string {
	if m.host == nil {
		return map[string]string{}
	}
	bound, err := m.host.ListBound(ctx)
	if err != nil {
		slog.Warn("[HOTKEY] failed to list registered hotkeys", "error", err)
		return map[string]string{}
	}
	if bound == nil {
		return map[string]string{}
	}
	return bound
}

// CurrentConfig returns a copy of the stored configuration.
func (m *Manager) CurrentConfig() (Config, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg == nil {
		return Config{}, false
	}
	return *m.cfg, true
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registered {
		return StateRegistered
	}
	return StateUnregistered
}

// Dispose releases the registration handle without touching the host.
// Stored configuration and state are kept; later triggers are dropped.
func (m *Manager) Dispose() {
	m.mu.Lock()
	release := m.release
	m.release = nil
	m.mu.Unlock()
	if release != nil {
		release()
	}
}
