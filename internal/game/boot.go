package game

import (
	"context"
	"fmt"
	"log/slog"

	"wasmsnake/internal/engine"
)

// Boot loads the engine and starts a driver on top of it, emitting on events.
// Call it once the display surface exists; newPresenter builds the pipeline
// on that surface. On error nothing is left running.
func Boot(ctx context.Context, cfg Config, events *EventBus, newPresenter func() (Presenter, error), log *slog.Logger) (*Driver, *engine.Module, error) {
	loadCtx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()
	mod, err := engine.LoadFile(loadCtx, cfg.EnginePath, engine.DefaultExports)
	if err != nil {
		return nil, nil, fmt.Errorf("load engine %s: %w", cfg.EnginePath, err)
	}
	log.Debug("engine loaded", "path", cfg.EnginePath, "memory", mod.Memory().Size())

	drv, err := New(Options{
		Engine:       mod,
		Layout:       cfg.Layout(),
		Lookup:       Glyphs,
		Seed:         cfg.Seed,
		NewPresenter: newPresenter,
		Events:       events,
		Logger:       log,
	})
	if err != nil {
		mod.Close(ctx)
		return nil, nil, err
	}
	return drv, mod, nil
}
