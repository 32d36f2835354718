//go:build windows

package hotkeys

import "golang.design/x/hotkey"

var modifierByName = map[string]modifierSpec{
	"CTRL":             {hotkey.ModCtrl, "Ctrl"},
	"CONTROL":          {hotkey.ModCtrl, "Ctrl"},
	"CMDORCTRL":        {hotkey.ModCtrl, "Ctrl"},
	"COMMANDORCONTROL": {hotkey.ModCtrl, "Ctrl"},
	"SHIFT":            {hotkey.ModShift, "Shift"},
	"ALT":              {hotkey.ModAlt, "Alt"},
	"OPTION":           {hotkey.ModAlt, "Alt"},
	"WIN":              {hotkey.ModWin, "Win"},
	"SUPER":            {hotkey.ModWin, "Win"},
	"META":             {hotkey.ModWin, "Win"},
	"CMD":              {hotkey.ModWin, "Win"},
	"COMMAND":          {hotkey.ModWin, "Win"},
}
