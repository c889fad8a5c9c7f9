// Package enginetest provides an in-process engine for driver tests.
package enginetest

import (
	"encoding/binary"
	"errors"

	"wasmsnake/internal/engine"
)

var ErrInjected = errors.New("enginetest: injected failure")

// Memory is a growable byte slice standing in for linear memory.
type Memory struct {
	Buf []byte
}

func NewMemory(size int) *Memory { return &Memory{Buf: make([]byte, size)} }

func (m *Memory) Size() uint32 { return uint32(len(m.Buf)) }

func (m *Memory) Read(offset, byteCount uint32) ([]byte, bool) {
	end := uint64(offset) + uint64(byteCount)
	if end > uint64(len(m.Buf)) {
		return nil, false
	}
	return m.Buf[offset:end:end], true
}

// Grow reallocates the buffer like memory.grow does, moving every byte.
func (m *Memory) Grow(extra int) {
	nb := make([]byte, len(m.Buf)+extra)
	copy(nb, m.Buf)
	m.Buf = nb
}

func (m *Memory) PutInt32(offset int, v int32) {
	binary.LittleEndian.PutUint32(m.Buf[offset:], uint32(v))
}

// Engine records every call and paints the framebuffer with OnTick.
type Engine struct {
	Mem    *Memory
	Layout engine.Layout
	Offset int

	Directions   []int32
	Difficulties []int32
	Lookup       map[int32]int32
	Ticks        int
	Starts       int
	Resets       int

	RandState, RandInc uint64
	RandSteps          int

	// Fail* make the matching call return ErrInjected.
	FailTick, FailDirection, FailDifficulty, FailStart, FailLookup, FailSeed bool

	// OnTick runs after a successful tick with the tick count.
	OnTick func(e *Engine)

	// GameOverOnStart makes Start raise game over before returning.
	GameOverOnStart bool
	onGameOver      func()

	// Calls lists call names in order.
	Calls []string
}

// New returns an engine whose framebuffer sits at the end of memory.
func New(width, height int) *Engine {
	fb := width * height * 4
	mem := NewMemory(1024 + fb)
	return &Engine{
		Mem:    mem,
		Layout: engine.Layout{Width: width, Height: height, Offset: engine.SuffixOffset},
		Offset: 1024,
		Lookup: map[int32]int32{},
	}
}

func (e *Engine) fail(flag bool) error {
	if flag {
		return ErrInjected
	}
	return nil
}

// SetPixel writes a framebuffer cell the way the guest would.
func (e *Engine) SetPixel(x, y int, v int32) {
	e.Mem.PutInt32(e.Offset+(y*e.Layout.Width+x)*4, v)
}

func (e *Engine) Fill(v int32) {
	for y := 0; y < e.Layout.Height; y++ {
		for x := 0; x < e.Layout.Width; x++ {
			e.SetPixel(x, y, v)
		}
	}
}

func (e *Engine) AdvanceTick() error {
	e.Calls = append(e.Calls, "tick")
	if err := e.fail(e.FailTick); err != nil {
		return err
	}
	e.Ticks++
	if e.OnTick != nil {
		e.OnTick(e)
	}
	return nil
}

func (e *Engine) SetDirection(code int32) error {
	e.Calls = append(e.Calls, "set_direction")
	if err := e.fail(e.FailDirection); err != nil {
		return err
	}
	e.Directions = append(e.Directions, code)
	return nil
}

func (e *Engine) SetDifficulty(code int32) error {
	e.Calls = append(e.Calls, "set_difficulty")
	if err := e.fail(e.FailDifficulty); err != nil {
		return err
	}
	e.Difficulties = append(e.Difficulties, code)
	return nil
}

func (e *Engine) Start() error {
	e.Calls = append(e.Calls, "start")
	if err := e.fail(e.FailStart); err != nil {
		return err
	}
	e.Starts++
	if e.GameOverOnStart {
		e.GameOver()
	}
	return nil
}

func (e *Engine) SetGameOverHandler(fn func()) { e.onGameOver = fn }

// GameOver calls the installed game-over handler, as the guest's import would.
func (e *Engine) GameOver() {
	if e.onGameOver != nil {
		e.onGameOver()
	}
}

func (e *Engine) ResetGame() error {
	e.Calls = append(e.Calls, "reset")
	e.Resets++
	return nil
}

func (e *Engine) SetLookupEntry(index, value int32) error {
	if len(e.Calls) == 0 || e.Calls[len(e.Calls)-1] != "set_glyph" {
		e.Calls = append(e.Calls, "set_glyph")
	}
	if err := e.fail(e.FailLookup); err != nil {
		return err
	}
	e.Lookup[index] = value
	return nil
}

func (e *Engine) SeedRandom(seed, seq uint64) error {
	e.Calls = append(e.Calls, "seed")
	if err := e.fail(e.FailSeed); err != nil {
		return err
	}
	return engine.SeedPCG(generator{e}, seed, seq)
}

func (e *Engine) Memory() engine.Memory { return e.Mem }

// generator steps a PCG32 state the way the stock engine's random export does.
type generator struct{ e *Engine }

func (g generator) State() uint64     { return g.e.RandState }
func (g generator) SetState(v uint64) { g.e.RandState = v }
func (g generator) SetInc(v uint64)   { g.e.RandInc = v }
func (g generator) Step() error {
	g.e.RandState = g.e.RandState*6364136223846793005 + g.e.RandInc
	g.e.RandSteps++
	return nil
}
