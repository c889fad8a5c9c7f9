// Package term plays the game in a terminal. Two framebuffer rows share one
// character cell: the upper half block takes the top pixel as foreground
// and the bottom pixel as background.
package term

import (
	"github.com/gdamore/tcell/v2"

	"wasmsnake/internal/engine"
	"wasmsnake/internal/game"
)

const (
	halfBlock = '▀'
	// barRow holds the buttons and the status text; the frame starts below.
	barRow   = 0
	frameRow = 1
)

var (
	buttonStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(200, 200, 200))
	statusStyle = tcell.StyleDefault
)

type button struct {
	name   string
	x0, x1 int // [x0, x1)
}

// layoutButtons places one "[name]" button per action along the bar.
func layoutButtons(actions []game.Action) []button {
	var bs []button
	x := 0
	for _, a := range actions {
		name := a.String()
		w := len(name) + 2
		bs = append(bs, button{name: name, x0: x, x1: x + w})
		x += w + 1
	}
	return bs
}

// View is the terminal presenter.
type View struct {
	scr     tcell.Screen
	buttons []button
	status  string
}

// NewView draws onto an initialised screen.
func NewView(scr tcell.Screen) *View {
	return &View{scr: scr, buttons: layoutButtons(game.ButtonActions)}
}

// SetStatus replaces the status text. It shows with the next frame.
func (v *View) SetStatus(s string) { v.status = s }

func (v *View) Present(f engine.Frame) error {
	v.drawBar()
	v.drawFrame(f)
	v.scr.Show()
	return nil
}

func (v *View) drawBar() {
	w, _ := v.scr.Size()
	for x := 0; x < w; x++ {
		v.scr.SetContent(x, barRow, ' ', nil, statusStyle)
	}
	end := 0
	for _, b := range v.buttons {
		v.text(b.x0, "["+b.name+"]", buttonStyle)
		end = b.x1
	}
	v.text(end+2, v.status, statusStyle)
}

func (v *View) text(x int, s string, style tcell.Style) {
	for _, r := range s {
		v.scr.SetContent(x, barRow, r, nil, style)
		x++
	}
}

func (v *View) drawFrame(f engine.Frame) {
	w, h := v.scr.Size()
	cols := min(f.Width, w)
	rows := min((f.Height+1)/2, h-frameRow)
	for r := 0; r < rows; r++ {
		for x := 0; x < cols; x++ {
			top := f.At(x, 2*r)
			bottom := int32(0)
			if 2*r+1 < f.Height {
				bottom = f.At(x, 2*r+1)
			}
			style := tcell.StyleDefault.Foreground(grey(top)).Background(grey(bottom))
			v.scr.SetContent(x, frameRow+r, halfBlock, nil, style)
		}
	}
}

func grey(idx int32) tcell.Color {
	g := int32(game.Grey(idx))
	return tcell.NewRGBColor(g, g, g)
}
