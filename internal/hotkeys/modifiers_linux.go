//go:build linux

package hotkeys

import "golang.design/x/hotkey"

// X11: Alt is Mod1, Super is Mod4.
var modifierByName = map[string]modifierSpec{
	"CTRL":             {hotkey.ModCtrl, "Ctrl"},
	"CONTROL":          {hotkey.ModCtrl, "Ctrl"},
	"CMDORCTRL":        {hotkey.ModCtrl, "Ctrl"},
	"COMMANDORCONTROL": {hotkey.ModCtrl, "Ctrl"},
	"SHIFT":            {hotkey.ModShift, "Shift"},
	"ALT":              {hotkey.Mod1, "Alt"},
	"OPTION":           {hotkey.Mod1, "Alt"},
	"SUPER":            {hotkey.Mod4, "Super"},
	"WIN":              {hotkey.Mod4, "Super"},
	"META":             {hotkey.Mod4, "Super"},
	"CMD":              {hotkey.Mod4, "Super"},
	"COMMAND":          {hotkey.Mod4, "Super"},
}
