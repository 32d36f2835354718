package hotkeys

import (
	"context"
	"sync"
)

// FakeHost is an in-memory Host for tests and headless runs.
type FakeHost struct {
	mu        sync.Mutex
	bound     map[string]fakeBinding
	occupied  map[string]bool
	bindFail  map[string]error
	unbindErr error
	queryErr  error
	listErr   error

	bindCalls      []string
	unbindAllCalls int
}

var _ Host = (*FakeHost)(nil)

type fakeBinding struct {
	action    string
	onTrigger TriggerFunc
}

func NewFakeHost() *FakeHost {
	return &FakeHost{
		bound:    make(map[string]fakeBinding),
		occupied: make(map[string]bool),
		bindFail: make(map[string]error),
	}
}

// FailBind makes Bind(shortcut) return err. A nil err clears the failure.
func (f *FakeHost) FailBind(shortcut string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.bindFail, shortcut)
		return
	}
	f.bindFail[shortcut] = err
}

func (f *FakeHost) SetUnbindAllError(err error) {
	f.mu.Lock()
	f.unbindErr = err
	f.mu.Unlock()
}

func (f *FakeHost) SetQueryError(err error) {
	f.mu.Lock()
	f.queryErr = err
	f.mu.Unlock()
}

func (f *FakeHost) SetListError(err error) {
	f.mu.Lock()
	f.listErr = err
	f.mu.Unlock()
}

// Occupy marks shortcut as taken by another application.
func (f *FakeHost) Occupy(shortcut string) {
	f.mu.Lock()
	f.occupied[shortcut] = true
	f.mu.Unlock()
}

func (f *FakeHost) Bind(_ context.Context, shortcut, action string, onTrigger TriggerFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindCalls = append(f.bindCalls, shortcut)
	if err, ok := f.bindFail[shortcut]; ok {
		return err
	}
	if f.occupied[shortcut] {
		return ErrShortcutInUse
	}
	if _, ok := f.bound[shortcut]; ok {
		return ErrShortcutInUse
	}
	f.bound[shortcut] = fakeBinding{action: action, onTrigger: onTrigger}
	return nil
}

// UnbindAll clears bindings unless an error was injected, in which case the
// bindings are left in place.
func (f *FakeHost) UnbindAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unbindAllCalls++
	if f.unbindErr != nil {
		return f.unbindErr
	}
	clear(f.bound)
	return nil
}

// QueryAvailable reports occupied shortcuts as taken. Shortcuts bound here
// stay available, as with SystemHost.
func (f *FakeHost) QueryAvailable(_ context.Context, shortcut string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return false, f.queryErr
	}
	return !f.occupied[shortcut], nil
}

func (f *FakeHost) ListBound(context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.boundLocked(), nil
}

// Fire simulates the OS reporting shortcut. It returns false when nothing is
// bound to it. The callback runs outside the fake's lock.
func (f *FakeHost) Fire(shortcut string) bool {
	f.mu.Lock()
	b, ok := f.bound[shortcut]
	f.mu.Unlock()
	if !ok || b.onTrigger == nil {
		return false
	}
	b.onTrigger(shortcut)
	return true
}

// Bound returns shortcut -> action for current bindings.
func (f *FakeHost) Bound() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boundLocked()
}

func (f *FakeHost) boundLocked() map[string]string {
	out := make(map[string]string, len(f.bound))
	for k, v := range f.bound {
		out[k] = v.action
	}
	return out
}

// BindCalls returns the shortcuts passed to Bind, in call order.
func (f *FakeHost) BindCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bindCalls...)
}

func (f *FakeHost) UnbindAllCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unbindAllCalls
}
