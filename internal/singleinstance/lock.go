// Package singleinstance keeps a second copy of the app from competing for
// the same global shortcuts.
package singleinstance

import (
	"errors"

	"vibe/internal/userutil"
)

// ErrAlreadyRunning is returned by TryLock when another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// DefaultName returns the per-user lock name shared by the app and its tools.
func DefaultName() string {
	return lockNamePrefix + "vibe-" + userutil.CurrentUsername()
}
