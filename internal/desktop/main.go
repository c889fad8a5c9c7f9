//go:build !android

package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"wasmsnake/internal/game"
)

// pollInterval bounds how long the loop sleeps in glfw before checking the
// clock. It is well under the shortest tick period.
const pollInterval = 0.002

// Run opens the window and plays until it is closed or ctx is done. setup,
// if non-nil, subscribes to the driver's events before the engine starts.
func Run(ctx context.Context, cfg game.Config, log *slog.Logger, setup func(*game.EventBus)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale, game.WindowTitle)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)

	events := game.NewEventBus()
	st := game.Status{Difficulty: game.Normal}
	setTitle := func(s string) { window.SetTitle(game.WindowTitle + " - " + s) }
	setTitle(st.String())
	st.Watch(events, setTitle)
	if setup != nil {
		setup(events)
	}

	var rend *Renderer
	drv, mod, err := game.Boot(ctx, cfg, events, func() (game.Presenter, error) {
		r, err := NewRenderer(window, cfg.Width, cfg.Height)
		if err != nil {
			return nil, err
		}
		rend = r
		return r, nil
	}, log)
	if rend != nil {
		defer rend.Destroy()
	}
	if err != nil {
		return err
	}
	defer mod.Close(ctx)
	defer drv.Close()

	bindKeys(window, drv)

	for !window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		glfw.WaitEventsTimeout(pollInterval)
		drv.Pump()
	}
	return nil
}
