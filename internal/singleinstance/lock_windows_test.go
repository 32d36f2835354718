//go:build windows

package singleinstance

import "testing"

func useTestLockDir(*testing.T) {}
