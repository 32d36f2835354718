package main

import (
	"errors"

	"vibe/internal/hotkeys"
)

func (a *App) requireHotkeys() (*hotkeys.Manager, error) {
	if a.hotkeys == nil {
		return nil, errors.New("hotkey manager is unavailable")
	}
	return a.hotkeys, nil
}
