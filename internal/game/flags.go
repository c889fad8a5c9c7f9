package game

import (
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"wasmsnake/internal/engine"
)

// Config is the runtime configuration of the front end.
type Config struct {
	EnginePath  string
	Seed        uint64
	Scale       int
	Terminal    bool
	Mute        bool
	Width       int
	Height      int
	FrameOffset int64
	LogLevel    slog.Level
	LogFile     string
}

// Layout returns the configured framebuffer layout.
func (c Config) Layout() engine.Layout {
	return engine.Layout{Width: c.Width, Height: c.Height, Offset: c.FrameOffset}
}

// ParseConfig reads flags from args. SNAKE_ENGINE and SNAKE_SEED supply
// defaults; without a seed the clock is used.
func ParseConfig(args []string, lookupEnv func(string) (string, bool), now time.Time) (Config, error) {
	cfg := Config{
		EnginePath:  DefaultEnginePath,
		Seed:        Entropy(now),
		Scale:       DefaultScale,
		Width:       FrameWidth,
		Height:      FrameHeight,
		FrameOffset: engine.SuffixOffset,
	}
	if p, ok := lookupEnv("SNAKE_ENGINE"); ok && p != "" {
		cfg.EnginePath = p
	}
	if s, ok := lookupEnv("SNAKE_SEED"); ok && s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("SNAKE_SEED: %w", err)
		}
		cfg.Seed = v
	}

	fs := flag.NewFlagSet("wasmsnake", flag.ContinueOnError)
	fs.StringVar(&cfg.EnginePath, "engine", cfg.EnginePath, "path to the engine .wasm")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per framebuffer pixel")
	fs.BoolVar(&cfg.Terminal, "terminal", false, "render in the terminal instead of a window")
	fs.BoolVar(&cfg.Mute, "mute", false, "disable sound")
	fs.IntVar(&cfg.Width, "fb-width", cfg.Width, "framebuffer width in engine pixels")
	fs.IntVar(&cfg.Height, "fb-height", cfg.Height, "framebuffer height in engine pixels")
	fs.Int64Var(&cfg.FrameOffset, "fb-offset", cfg.FrameOffset, "framebuffer byte offset in engine memory (-1: end of memory)")
	fs.TextVar(&cfg.LogLevel, "log-level", slog.LevelInfo, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log", "", "log file (default stderr; discarded in terminal mode)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Scale < 1 || cfg.Scale > MaxScale {
		return Config{}, fmt.Errorf("scale %d out of range 1..%d", cfg.Scale, MaxScale)
	}
	if cfg.Width < 1 || cfg.Width > MaxFrameSide || cfg.Height < 1 || cfg.Height > MaxFrameSide {
		return Config{}, fmt.Errorf("framebuffer %dx%d out of range 1..%d", cfg.Width, cfg.Height, MaxFrameSide)
	}
	if cfg.FrameOffset < engine.SuffixOffset {
		return Config{}, fmt.Errorf("fb-offset %d: must be -1 or a byte offset", cfg.FrameOffset)
	}
	return cfg, nil
}
