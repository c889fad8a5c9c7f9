package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"wasmsnake/internal/game"
)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Action
		quit bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.ActionUp, false},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.ActionLeft, false},
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), game.ActionUp, false},
		{"shift D", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), game.ActionRight, false},
		{"digit 1", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), game.ActionHard, false},
		{"digit 3", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), game.ActionEasy, false},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), game.ActionRefresh, false},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), game.ActionRefresh, false},
		{"unmapped", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.ActionNone, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.ActionNone, false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.ActionNone, true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), game.ActionNone, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), game.ActionNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := KeyAction(tt.ev)
			if got != tt.want || quit != tt.quit {
				t.Fatalf("got %v quit=%v, want %v quit=%v", got, quit, tt.want, tt.quit)
			}
		})
	}
}

func click(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func release(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func TestTranslateButtons(t *testing.T) {
	v := NewView(newScreen(t, 80, 4))
	for i, b := range v.buttons {
		tr := v.Translator()
		for _, x := range []int{b.x0, b.x1 - 1} {
			a, quit := tr.Translate(click(x, barRow))
			if quit || a != game.ButtonActions[i] {
				t.Fatalf("click %d on %q = %v", x, b.name, a)
			}
			tr.Translate(release(x, barRow))
		}
	}
}

func TestTranslateMissesAndDrags(t *testing.T) {
	v := NewView(newScreen(t, 80, 4))
	tr := v.Translator()
	gap := v.buttons[0].x1

	if a, _ := tr.Translate(click(gap, barRow)); a != game.ActionNone {
		t.Fatalf("gap click = %v", a)
	}
	tr.Translate(release(gap, barRow))
	if a, _ := tr.Translate(click(1, frameRow)); a != game.ActionNone {
		t.Fatalf("playfield click = %v", a)
	}
	tr.Translate(release(1, frameRow))

	if a, _ := tr.Translate(click(1, barRow)); a != game.ActionUp {
		t.Fatalf("press = %v", a)
	}
	if a, _ := tr.Translate(click(2, barRow)); a != game.ActionNone {
		t.Fatalf("drag fired %v", a)
	}
	tr.Translate(release(2, barRow))
	if a, _ := tr.Translate(click(2, barRow)); a != game.ActionUp {
		t.Fatalf("second press = %v", a)
	}
}

func TestTranslateKeys(t *testing.T) {
	tr := NewView(newScreen(t, 10, 4)).Translator()
	if a, _ := tr.Translate(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)); a != game.ActionDown {
		t.Fatalf("key = %v", a)
	}
	if a, quit := tr.Translate(tcell.NewEventResize(10, 4)); a != game.ActionNone || quit {
		t.Fatal("resize produced input")
	}
}
