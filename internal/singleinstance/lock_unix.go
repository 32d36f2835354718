//go:build !windows

package singleinstance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const lockNamePrefix = ""

var lockDirFn = os.TempDir

// Lock holds an exclusive flock on a file under the temp dir.
// The kernel drops the lock when the owning process exits.
type Lock struct {
	file *os.File
}

func lockPath(name string) string {
	return filepath.Join(lockDirFn(), name+".lock")
}

// TryLock attempts to take the lock without blocking.
// Returns ErrAlreadyRunning if another process already holds it.
func TryLock(name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("lock name is required")
	}
	path := lockPath(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %q: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("flock %q: %w", path, err)
	}
	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file. Safe to call on nil receiver and
// idempotent. The file is left in place for the next instance.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	return errors.Join(unlockErr, closeErr)
}
