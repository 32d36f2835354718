package hotkeys

import "context"

// TriggerFunc is invoked by a Host each time a bound shortcut fires.
type TriggerFunc func(shortcut string)

// Host is the platform capability that owns global key capture.
type Host interface {
	// Bind registers shortcut for action and calls onTrigger when it fires.
	Bind(ctx context.Context, shortcut, action string, onTrigger TriggerFunc) error
	// UnbindAll releases every binding made through this host.
	UnbindAll(ctx context.Context) error
	// QueryAvailable reports whether shortcut could be bound right now.
	QueryAvailable(ctx context.Context, shortcut string) (bool, error)
	// ListBound returns the current shortcut -> action table.
	ListBound(ctx context.Context) (map[string]string, error)
}
