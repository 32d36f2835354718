package hotkeys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	"vibe/internal/workerutil"
)

// osHotkey is the subset of *hotkey.Hotkey used by SystemHost.
type osHotkey interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

// newOSHotkey is swapped in tests.
var newOSHotkey = func(b Binding) osHotkey {
	return hotkey.New(b.Modifiers(), b.Key())
}

type boundHotkey struct {
	shortcut string
	action   string
	hk       osHotkey
	cancel   context.CancelFunc
}

// SystemHost registers global shortcuts with the operating system.
type SystemHost struct {
	mu      sync.Mutex
	entries map[string]*boundHotkey // keyed by normalized binding
	wg      sync.WaitGroup
}

var _ Host = (*SystemHost)(nil)

func NewSystemHost() *SystemHost {
	return &SystemHost{entries: make(map[string]*boundHotkey)}
}

// Bind registers shortcut with the OS and starts a listener that calls
// onTrigger with the original shortcut string on every key-down.
func (h *SystemHost) Bind(ctx context.Context, shortcut, action string, onTrigger TriggerFunc) error {
	if onTrigger == nil {
		return errors.New("onTrigger callback is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	binding, err := ParseBinding(shortcut)
	if err != nil {
		return err
	}
	key := binding.Normalized()

	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.entries[key]; ok {
		return fmt.Errorf("%w: %s is already bound to %s", ErrShortcutInUse, key, existing.action)
	}

	hk := newOSHotkey(binding)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("%w (%s): %w", ErrShortcutInUse, key, err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	h.entries[key] = &boundHotkey{shortcut: shortcut, action: action, hk: hk, cancel: cancel}

	workerutil.RunWithPanicRecovery(listenCtx, "hotkey-listener:"+key, &h.wg, func(ctx context.Context) {
		listen(ctx, hk.Keydown(), shortcut, onTrigger)
	}, workerutil.RecoveryOptions{MaxRetries: 3})

	slog.Debug("[HOTKEY] registered OS hotkey", "binding", key, "action", action)
	return nil
}

func listen(ctx context.Context, keydown <-chan hotkey.Event, shortcut string, onTrigger TriggerFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			onTrigger(shortcut)
		}
	}
}

// UnbindAll stops every listener and unregisters every OS hotkey.
func (h *SystemHost) UnbindAll(context.Context) error {
	h.mu.Lock()
	entries := h.entries
	h.entries = make(map[string]*boundHotkey)
	h.mu.Unlock()

	var errs []error
	for key, e := range entries {
		e.cancel()
		if err := e.hk.Unregister(); err != nil {
			slog.Warn("[HOTKEY] failed to unregister OS hotkey", "binding", key, "error", err)
			errs = append(errs, fmt.Errorf("unregister %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// QueryAvailable probes the OS by registering and immediately releasing
// shortcut. A shortcut already bound here is available: re-registering
// releases it first.
func (h *SystemHost) QueryAvailable(ctx context.Context, shortcut string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	binding, err := ParseBinding(shortcut)
	if err != nil {
		return false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.entries[binding.Normalized()]; ok {
		return true, nil
	}

	probe := newOSHotkey(binding)
	if err := probe.Register(); err != nil {
		slog.Debug("[HOTKEY] shortcut unavailable", "binding", binding.Normalized(), "error", err)
		return false, nil
	}
	if err := probe.Unregister(); err != nil {
		return true, fmt.Errorf("release probe %s: %w", binding.Normalized(), err)
	}
	return true, nil
}

// ListBound returns shortcut -> action for every active binding.
func (h *SystemHost) ListBound(context.Context) (map[string]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.entries))
	for _, e := range h.entries {
		out[e.shortcut] = e.action
	}
	return out, nil
}

// Close releases all bindings and waits for listeners to exit.
func (h *SystemHost) Close() error {
	err := h.UnbindAll(context.Background())
	h.wg.Wait()
	return err
}
