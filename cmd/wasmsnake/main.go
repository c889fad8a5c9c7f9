// Command wasmsnake hosts a Snake engine compiled to WebAssembly and plays
// it in a window or in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wasmsnake/internal/audio"
	"wasmsnake/internal/audio/device"
	"wasmsnake/internal/desktop"
	"wasmsnake/internal/game"
	"wasmsnake/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := game.ParseConfig(os.Args[1:], os.LookupEnv, time.Now())
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wasmsnake: %v\n", err)
		return 2
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wasmsnake: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	play := desktop.Run
	if cfg.Terminal {
		play = term.Run
	}
	if err := play(ctx, cfg, log, soundSetup(cfg, log)); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("exit", "err", err)
		if cfg.Terminal || cfg.LogFile != "" {
			fmt.Fprintf(os.Stderr, "wasmsnake: %v\n", err)
		}
		return 1
	}
	return 0
}

// newLogger writes to stderr, or to the -log file. In terminal mode stderr
// would corrupt the screen, so logs are dropped unless a file is given.
func newLogger(cfg game.Config) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case cfg.Terminal:
		w = io.Discard
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(h), closeFn, nil
}

// soundSetup returns a hook that plays the game-over chime, or nil when
// sound is off or unavailable.
func soundSetup(cfg game.Config, log *slog.Logger) func(*game.EventBus) {
	if cfg.Mute {
		return nil
	}
	chime, err := audio.GameOverChime()
	if err != nil {
		log.Warn("chime synthesis failed", "err", err)
		return nil
	}
	player, err := device.New(0.8)
	if err != nil {
		log.Warn("audio init failed (continuing without sound)", "err", err)
		return nil
	}
	return func(events *game.EventBus) {
		events.Subscribe(game.EventGameOver, func(game.Event) { player.Play(chime) })
	}
}
