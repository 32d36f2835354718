//go:build !windows

package singleinstance

import "testing"

func useTestLockDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := lockDirFn
	lockDirFn = func() string { return dir }
	t.Cleanup(func() { lockDirFn = orig })
}
