package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"wasmsnake/internal/game"
)

// KeyAction maps a key press to an action. quit reports a request to leave.
func KeyAction(ev *tcell.EventKey) (a game.Action, quit bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.ActionUp, false
	case tcell.KeyRight:
		return game.ActionRight, false
	case tcell.KeyDown:
		return game.ActionDown, false
	case tcell.KeyLeft:
		return game.ActionLeft, false
	case tcell.KeyF5:
		return game.ActionRefresh, false
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionNone, true
	case tcell.KeyRune:
	default:
		return game.ActionNone, false
	}

	switch r := unicode.ToLower(ev.Rune()); r {
	case 'w':
		return game.ActionUp, false
	case 'd':
		return game.ActionRight, false
	case 's':
		return game.ActionDown, false
	case 'a':
		return game.ActionLeft, false
	case 'r':
		return game.ActionRefresh, false
	case 'q':
		return game.ActionNone, true
	default:
		return game.DigitAction(r), false
	}
}

// Translator turns raw terminal events into actions. It owns the mouse
// button state, so one Translator must serve one event stream.
type Translator struct {
	buttons []button
	held    bool
}

func (v *View) Translator() *Translator {
	return &Translator{buttons: v.buttons}
}

// Translate handles one event. Button clicks fire on press, not on drag.
func (t *Translator) Translate(ev tcell.Event) (a game.Action, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return KeyAction(ev)
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		pressed := down && !t.held
		t.held = down
		if !pressed {
			return game.ActionNone, false
		}
		x, y := ev.Position()
		return t.buttonAt(x, y), false
	}
	return game.ActionNone, false
}

func (t *Translator) buttonAt(x, y int) game.Action {
	if y != barRow {
		return game.ActionNone
	}
	for _, b := range t.buttons {
		if x >= b.x0 && x < b.x1 {
			return game.ParseAction(b.name)
		}
	}
	return game.ActionNone
}
