package hotkeys

import (
	"errors"
	"fmt"
	"strings"

	"vibe/internal/actions"
)

var (
	// ErrInvalidShortcut reports an accelerator the host cannot parse.
	ErrInvalidShortcut = errors.New("invalid shortcut")
	// ErrShortcutInUse reports a combination already owned by this host,
	// another application, or the system.
	ErrShortcutInUse = errors.New("shortcut already in use")
	// ErrPermissionDenied is wrapped by hosts when the platform refuses global
	// key capture until the user grants permission.
	ErrPermissionDenied = errors.New("permission to capture global shortcuts denied")
	// ErrDuplicateShortcut reports a configuration binding both actions to
	// the same combination.
	ErrDuplicateShortcut = errors.New("start and stop recording hotkeys must differ")

	errHostUnavailable = errors.New("hotkey host is unavailable")
)

// BindError is returned by Manager.RegisterHotkeys when the host rejects a
// binding. NeedsPermission tells the caller to prompt the user for access.
type BindError struct {
	Action          actions.Action
	Shortcut        string
	NeedsPermission bool
	Err             error
}

func newBindError(action actions.Action, shortcut string, err error) *BindError {
	return &BindError{
		Action:          action,
		Shortcut:        shortcut,
		NeedsPermission: errors.Is(err, ErrPermissionDenied),
		Err:             err,
	}
}

func (e *BindError) Error() string {
	what := strings.ReplaceAll(string(e.Action), "_", " ")
	if e.NeedsPermission {
		return fmt.Sprintf("failed to register %s hotkey '%s': %v. Allow the app to capture global shortcuts in the system settings and try again.",
			what, e.Shortcut, e.Err)
	}
	return fmt.Sprintf("failed to register %s hotkey '%s': %v. This may be because the key combination is already in use by another application or the system.",
		what, e.Shortcut, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }
