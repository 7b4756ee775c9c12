package viewer

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// action names a keyboard command.
type action string

const (
	actionZoomIn    action = "zoomin"
	actionZoomOut   action = "zoomout"
	actionRefit     action = "fit"
	actionPanLeft   action = "left"
	actionPanRight  action = "right"
	actionPanUp     action = "up"
	actionPanDown   action = "down"
	actionCopyText  action = "copy"
	actionPaste     action = "paste"
	actionQuit      action = "quit"
	actionNoCommand action = ""
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var keyboardAction = map[KeyShortcut]action{
	{Rune: '+'}:                           actionZoomIn,
	{Rune: '='}:                           actionZoomIn,
	{Code: key.CodeKeypadPlusSign}:        actionZoomIn,
	{Rune: '-'}:                           actionZoomOut,
	{Code: key.CodeKeypadHyphenMinus}:     actionZoomOut,
	{Rune: 'f'}:                           actionRefit,
	{Rune: '0'}:                           actionRefit,
	{Code: key.CodeLeftArrow}:             actionPanLeft,
	{Code: key.CodeRightArrow}:            actionPanRight,
	{Code: key.CodeUpArrow}:               actionPanUp,
	{Code: key.CodeDownArrow}:             actionPanDown,
	{Rune: 'c', Modifiers: key.ModControl}: actionCopyText,
	{Rune: 'v', Modifiers: key.ModControl}: actionPaste,
	{Rune: 'q'}:                           actionQuit,
	{Code: key.CodeEscape}:                actionQuit,
}

// lookupAction maps a key press to its command. Shift is ignored so that
// '+' works on layouts where it needs shift.
func lookupAction(e key.Event) action {
	mods := e.Modifiers & key.ModControl
	if e.Rune > 0 {
		if a, ok := keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return a
		}
	}
	if a, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
		return a
	}
	if mods != 0 {
		if r := codeRune(e.Code); r != 0 {
			return keyboardAction[KeyShortcut{Rune: r, Modifiers: mods}]
		}
	}
	return actionNoCommand
}

// codeRune recovers the letter of a control chord whose rune was replaced
// by a control character.
func codeRune(c key.Code) rune {
	if c >= key.CodeA && c <= key.CodeZ {
		return 'a' + rune(c-key.CodeA)
	}
	return 0
}
