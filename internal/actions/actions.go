// Package actions carries recording actions from global shortcuts to
// in-process subscribers (the Wails event forwarder, CLI printers, tests).
package actions

import (
	"time"

	"github.com/google/uuid"
)

// Action is the symbolic name of a recording action.
type Action string

const (
	StartRecording Action = "start_recording"
	StopRecording  Action = "stop_recording"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a == StartRecording || a == StopRecording
}

// Event is dispatched once per fired shortcut that maps to an action.
// It is never stored by the bus.
type Event struct {
	ID       string    `json:"id"`
	Action   Action    `json:"action"`
	Shortcut string    `json:"shortcut"`
	FiredAt  time.Time `json:"firedAt"`
}

var nowFn = time.Now

// NewEvent builds an event with a fresh ID for deduplication on the frontend.
func NewEvent(action Action, shortcut string) Event {
	return Event{
		ID:       uuid.NewString(),
		Action:   action,
		Shortcut: shortcut,
		FiredAt:  nowFn(),
	}
}
