//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"wasmsnake/internal/game"
)

// keyAction maps a physical key to a driver action.
func keyAction(key glfw.Key) game.Action {
	switch key {
	case glfw.KeyUp, glfw.KeyW:
		return game.ActionUp
	case glfw.KeyRight, glfw.KeyD:
		return game.ActionRight
	case glfw.KeyDown, glfw.KeyS:
		return game.ActionDown
	case glfw.KeyLeft, glfw.KeyA:
		return game.ActionLeft
	case glfw.KeyR, glfw.KeyF5:
		return game.ActionRefresh
	case glfw.Key1, glfw.KeyKP1:
		return game.DigitAction('1')
	case glfw.Key2, glfw.KeyKP2:
		return game.DigitAction('2')
	case glfw.Key3, glfw.KeyKP3:
		return game.DigitAction('3')
	}
	return game.ActionNone
}

// bindKeys routes key presses to drv. Callbacks fire inside glfw's event
// processing, which runs on the display goroutine.
func bindKeys(window *glfw.Window, drv *game.Driver) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if a := keyAction(key); a != game.ActionNone {
			drv.Handle(a)
		}
	})
}
