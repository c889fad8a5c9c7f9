package game

import "time"

// Default framebuffer dimensions (in engine pixels), those of the stock
// engine build. Engines built with other dimensions need -fb-width and
// -fb-height.
const (
	FrameWidth  = 256
	FrameHeight = 128
	// MaxFrameSide bounds either dimension; it is well inside GL's
	// guaranteed texture size.
	MaxFrameSide = 4096
)

// Window defaults.
const (
	WindowTitle  = "WASM Snake"
	DefaultScale = 4
	MaxScale     = 12
)

// Tick periods per difficulty.
const (
	HardPeriod   = 50 * time.Millisecond
	NormalPeriod = 100 * time.Millisecond
	EasyPeriod   = 200 * time.Millisecond
)

// Engine startup.
const (
	DefaultEnginePath = "snake.wasm"
	LoadTimeout       = 10 * time.Second
	// Stream selector for the PCG increment. Changing it changes every
	// seeded game.
	SeedSequence = 0xDA3E39CB94B95BDB
)
