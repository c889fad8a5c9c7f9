package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"wasmsnake/internal/game"
)

// Run plays in the controlling terminal until the user quits or ctx is done.
// setup, if non-nil, subscribes to the driver's events before the engine
// starts.
func Run(ctx context.Context, cfg game.Config, log *slog.Logger, setup func(*game.EventBus)) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer scr.Fini()
	scr.EnableMouse()
	scr.HideCursor()
	scr.Clear()

	view := NewView(scr)
	events := game.NewEventBus()
	st := game.Status{Difficulty: game.Normal}
	view.SetStatus(st.String())
	st.Watch(events, view.SetStatus)
	if setup != nil {
		setup(events)
	}

	drv, mod, err := game.Boot(ctx, cfg, events, func() (game.Presenter, error) { return view, nil }, log)
	if err != nil {
		return err
	}
	defer mod.Close(ctx)
	defer drv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	actions := make(chan game.Action, 16)
	go pollInput(ctx, cancel, scr, view.Translator(), actions)

	err = drv.Run(ctx, actions)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollInput forwards translated events until quit or until the screen is
// finalised. It never touches the driver.
func pollInput(ctx context.Context, quit context.CancelFunc, scr tcell.Screen, tr *Translator, out chan<- game.Action) {
	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			scr.Sync()
			continue
		}
		a, q := tr.Translate(ev)
		if q {
			quit()
			return
		}
		if a == game.ActionNone {
			continue
		}
		select {
		case out <- a:
		case <-ctx.Done():
			return
		}
	}
}
