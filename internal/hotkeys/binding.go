package hotkeys

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Binding describes a parsed accelerator ready for OS registration.
// Construct only via ParseBinding to guarantee invariant consistency.
type Binding struct {
	modifiers  []hotkey.Modifier
	key        hotkey.Key
	normalized string
}

// Modifiers returns a copy of the OS modifier list in input order.
func (b Binding) Modifiers() []hotkey.Modifier {
	return append([]hotkey.Modifier(nil), b.modifiers...)
}

// Key returns the OS key code.
func (b Binding) Key() hotkey.Key { return b.key }

// Normalized returns the canonical human-readable accelerator.
func (b Binding) Normalized() string { return b.normalized }

type modifierSpec struct {
	mod     hotkey.Modifier
	display string
}

type keySpec struct {
	key     hotkey.Key
	display string
}

// ParseBinding parses accelerators like "Ctrl+Shift+R" or
// "CommandOrControl+Shift+F12". Matching is case-insensitive and at least one
// modifier is required.
func ParseBinding(spec string) (Binding, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Binding{}, fmt.Errorf("%w: shortcut is empty", ErrInvalidShortcut)
	}

	parts := strings.Split(raw, "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("%w: shortcut must include modifiers and key: %q", ErrInvalidShortcut, raw)
	}

	seen := make(map[hotkey.Modifier]struct{}, len(parts)-1)
	var mods []hotkey.Modifier
	var names []string
	for _, token := range parts[:len(parts)-1] {
		name := strings.ToUpper(strings.TrimSpace(token))
		ms, ok := modifierByName[name]
		if !ok {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidShortcut, token, raw)
		}
		if _, dup := seen[ms.mod]; dup {
			continue
		}
		seen[ms.mod] = struct{}{}
		mods = append(mods, ms.mod)
		names = append(names, ms.display)
	}

	keyToken := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if keyToken == "" {
		return Binding{}, fmt.Errorf("%w: missing key in %q", ErrInvalidShortcut, raw)
	}
	k, ok := keyByName[keyToken]
	if !ok {
		return Binding{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidShortcut, parts[len(parts)-1], raw)
	}

	return Binding{
		modifiers:  mods,
		key:        k.key,
		normalized: strings.Join(append(names, k.display), "+"),
	}, nil
}

var keyByName = buildKeyTable()

func buildKeyTable() map[string]keySpec {
	table := map[string]keySpec{
		"SPACE":  {hotkey.KeySpace, "Space"},
		"TAB":    {hotkey.KeyTab, "Tab"},
		"ENTER":  {hotkey.KeyReturn, "Enter"},
		"RETURN": {hotkey.KeyReturn, "Enter"},
		"ESC":    {hotkey.KeyEscape, "Esc"},
		"ESCAPE": {hotkey.KeyEscape, "Esc"},
		"DELETE": {hotkey.KeyDelete, "Delete"},
		"LEFT":   {hotkey.KeyLeft, "Left"},
		"RIGHT":  {hotkey.KeyRight, "Right"},
		"UP":     {hotkey.KeyUp, "Up"},
		"DOWN":   {hotkey.KeyDown, "Down"},

		"F1":  {hotkey.KeyF1, "F1"},
		"F2":  {hotkey.KeyF2, "F2"},
		"F3":  {hotkey.KeyF3, "F3"},
		"F4":  {hotkey.KeyF4, "F4"},
		"F5":  {hotkey.KeyF5, "F5"},
		"F6":  {hotkey.KeyF6, "F6"},
		"F7":  {hotkey.KeyF7, "F7"},
		"F8":  {hotkey.KeyF8, "F8"},
		"F9":  {hotkey.KeyF9, "F9"},
		"F10": {hotkey.KeyF10, "F10"},
		"F11": {hotkey.KeyF11, "F11"},
		"F12": {hotkey.KeyF12, "F12"},
	}

	letters := []hotkey.Key{
		hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE, hotkey.KeyF,
		hotkey.KeyG, hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ, hotkey.KeyK, hotkey.KeyL,
		hotkey.KeyM, hotkey.KeyN, hotkey.KeyO, hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR,
		hotkey.KeyS, hotkey.KeyT, hotkey.KeyU, hotkey.KeyV, hotkey.KeyW, hotkey.KeyX,
		hotkey.KeyY, hotkey.KeyZ,
	}
	for i, k := range letters {
		name := string(rune('A' + i))
		table[name] = keySpec{k, name}
	}

	digits := []hotkey.Key{
		hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
		hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
	}
	for i, k := range digits {
		name := string(rune('0' + i))
		table[name] = keySpec{k, name}
	}
	return table
}
