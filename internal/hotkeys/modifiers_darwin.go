//go:build darwin

package hotkeys

import "golang.design/x/hotkey"

// CmdOrCtrl resolves to Command on macOS.
var modifierByName = map[string]modifierSpec{
	"CTRL":             {hotkey.ModCtrl, "Ctrl"},
	"CONTROL":          {hotkey.ModCtrl, "Ctrl"},
	"CMDORCTRL":        {hotkey.ModCmd, "Cmd"},
	"COMMANDORCONTROL": {hotkey.ModCmd, "Cmd"},
	"SHIFT":            {hotkey.ModShift, "Shift"},
	"ALT":              {hotkey.ModOption, "Option"},
	"OPTION":           {hotkey.ModOption, "Option"},
	"CMD":              {hotkey.ModCmd, "Cmd"},
	"COMMAND":          {hotkey.ModCmd, "Cmd"},
	"SUPER":            {hotkey.ModCmd, "Cmd"},
	"META":             {hotkey.ModCmd, "Cmd"},
	"WIN":              {hotkey.ModCmd, "Cmd"},
}
