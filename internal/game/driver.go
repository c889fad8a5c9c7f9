package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"wasmsnake/internal/engine"
)

// Options wires a Driver. The display surface and the engine must already
// exist; New performs the remaining startup steps in order.
type Options struct {
	Engine engine.Engine
	Layout engine.Layout
	// Lookup entries are loaded into the engine one index at a time.
	Lookup []int32
	Seed   uint64
	// NewPresenter builds the graphics pipeline. It runs after seeding.
	NewPresenter func() (Presenter, error)
	NewTicker    TickerFunc
	// Events is the bus the driver emits on. Subscribe before New to see
	// events raised during startup.
	Events *EventBus
	Logger *slog.Logger
}

// GameOverNotifier is implemented by engines that report game over through a
// callback.
type GameOverNotifier interface {
	SetGameOverHandler(fn func())
}

// Driver is the composition root. It is not safe for concurrent use: every
// method must run on the goroutine that owns the display.
type Driver struct {
	eng    engine.Engine
	frames *engine.FrameSource
	pres   Presenter
	dir    *DirectionController
	clock  *Clock
	events *EventBus
	log    *slog.Logger
}

// New runs startup: lookup tables, seed, frame view, presenter, initial
// direction, engine start, clock start. Any failure aborts startup.
func New(opts Options) (*Driver, error) {
	d := &Driver{
		eng:    opts.Engine,
		events: opts.Events,
		log:    opts.Logger,
	}
	if d.events == nil {
		d.events = NewEventBus()
	}
	if d.log == nil {
		d.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	// Hooked before the first engine call so a game over raised during
	// startup still reaches the bus.
	if n, ok := d.eng.(GameOverNotifier); ok {
		n.SetGameOverHandler(d.GameOver)
	}

	for i, v := range opts.Lookup {
		if err := d.eng.SetLookupEntry(int32(i), v); err != nil {
			return nil, fmt.Errorf("lookup entry %d: %w", i, err)
		}
	}
	if err := d.eng.SeedRandom(opts.Seed, SeedSequence); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	frames, err := engine.NewFrameSource(d.eng.Memory(), opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("frame source: %w", err)
	}
	d.frames = frames

	pres, err := opts.NewPresenter()
	if err != nil {
		return nil, fmt.Errorf("presenter: %w", err)
	}
	d.pres = pres

	d.dir = NewDirectionController(d.eng)
	if err := d.dir.Push(); err != nil {
		return nil, fmt.Errorf("initial direction: %w", err)
	}
	if err := d.eng.Start(); err != nil {
		return nil, fmt.Errorf("engine start: %w", err)
	}

	d.clock = NewClock(d.eng, opts.NewTicker)
	if err := d.clock.Start(); err != nil {
		d.clock.Stop()
		return nil, fmt.Errorf("clock: %w", err)
	}

	d.log.Info("driver started",
		"frame", fmt.Sprintf("%dx%d", opts.Layout.Width, opts.Layout.Height),
		"offset", frames.Offset(),
		"seed", opts.Seed,
		"difficulty", d.clock.Difficulty())
	return d, nil
}

func (d *Driver) Events() *EventBus      { return d.events }
func (d *Driver) Heading() Direction     { return d.dir.Current() }
func (d *Driver) Difficulty() Difficulty { return d.clock.Difficulty() }

// Tick advances the engine one step and draws the result. If the engine or
// the presenter fails the frame is dropped, but the input gate still reopens
// and the clock stays armed, so input is never locked out.
func (d *Driver) Tick() {
	defer d.dir.OpenGate()

	if err := d.eng.AdvanceTick(); err != nil {
		d.tickFailed(err)
		return
	}
	if err := d.pres.Present(d.frames.Frame()); err != nil {
		d.tickFailed(err)
	}
}

func (d *Driver) tickFailed(err error) {
	d.log.Warn("tick abandoned", "err", err)
	d.events.Emit(Event{Type: EventTickFailed, Err: err})
}

// Handle applies one input action. Unknown actions are ignored.
func (d *Driver) Handle(a Action) {
	if dir, ok := a.Direction(); ok {
		accepted, err := d.dir.Propose(dir)
		if err != nil {
			d.log.Warn("turn rejected by engine", "dir", dir, "err", err)
			return
		}
		if accepted {
			d.events.Emit(Event{Type: EventTurn, Direction: dir})
		}
		return
	}
	if diff, ok := a.Difficulty(); ok {
		if err := d.clock.SetDifficulty(diff); err != nil {
			d.log.Warn("difficulty rejected by engine", "difficulty", diff, "err", err)
			return
		}
		d.log.Debug("difficulty changed", "difficulty", diff, "period", diff.Period())
		d.events.Emit(Event{Type: EventDifficulty, Difficulty: diff})
		return
	}
	if a == ActionRefresh {
		// Only the simulation restarts; clock and input state carry on.
		if err := d.eng.ResetGame(); err != nil {
			d.log.Warn("reset", "err", err)
			return
		}
		d.events.Emit(Event{Type: EventReset})
	}
}

// GameOver is the engine's game-over notification.
func (d *Driver) GameOver() {
	d.log.Info("game over")
	d.events.Emit(Event{Type: EventGameOver})
}

// Pump runs a tick if one is due and reports whether it did.
func (d *Driver) Pump() bool {
	select {
	case <-d.clock.C():
		d.Tick()
		return true
	default:
		return false
	}
}

// Run dispatches actions and ticks on the calling goroutine until ctx is
// done. A closed actions channel only stops input.
func (d *Driver) Run(ctx context.Context, actions <-chan Action) error {
	defer d.clock.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			d.Handle(a)
		case <-d.clock.C():
			d.Tick()
		}
	}
}

// Close stops the clock.
func (d *Driver) Close() { d.clock.Stop() }
