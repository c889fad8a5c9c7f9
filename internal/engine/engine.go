package engine

import "errors"

var (
	ErrMissingExport = errors.New("engine: missing export")
	ErrBadLayout     = errors.New("engine: framebuffer layout does not fit memory")
)

// Memory is the engine's linear memory as seen by the host.
// Read must return a view that aliases the memory, not a copy.
type Memory interface {
	Size() uint32
	Read(offset, byteCount uint32) ([]byte, bool)
}

// Engine is the external simulation module. Direction and difficulty are passed
// as raw engine codes: 0..3 for directions, 1..3 for difficulty.
type Engine interface {
	AdvanceTick() error
	SetDirection(code int32) error
	SetDifficulty(code int32) error
	Start() error
	ResetGame() error
	SetLookupEntry(index, value int32) error
	// SeedRandom runs the two-step seeding sequence on the engine's generator.
	SeedRandom(seed, seq uint64) error
	Memory() Memory
}

// Exports names the engine's exported symbols.
type Exports struct {
	Memory         string
	AdvanceTick    string
	SetDirection   string
	SetDifficulty  string
	Start          string
	ResetGame      string
	Random         string
	SetLookupEntry string
	RandomState    string
	RandomInc      string

	// Host import the engine calls on game over.
	HostModule   string
	GameOverFunc string
}

// DefaultExports matches the symbol names of the stock snake engine.
var DefaultExports = Exports{
	Memory:         "memory",
	AdvanceTick:    "tick",
	SetDirection:   "set_direction",
	SetDifficulty:  "set_difficulty",
	Start:          "start",
	ResetGame:      "reset",
	Random:         "random",
	SetLookupEntry: "set_glyph",
	RandomState:    "rng_state",
	RandomInc:      "rng_inc",
	HostModule:     "env",
	GameOverFunc:   "game_over",
}
