package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Module is an Engine backed by a WebAssembly module running in wazero.
// All calls run synchronously on the caller's goroutine, including the
// game-over host callback.
type Module struct {
	rt  wazero.Runtime
	mod api.Module
	ex  Exports
	ctx context.Context

	tick, setDir, setDiff, start, reset, random, setLookup api.Function

	state, inc api.MutableGlobal

	onGameOver func()
}

// LoadFile reads and instantiates the engine at path.
func LoadFile(ctx context.Context, path string, ex Exports) (*Module, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read engine: %w", err)
	}
	return Load(ctx, bin, ex)
}

// Load compiles and instantiates an engine binary. On error nothing is left
// running.
func Load(ctx context.Context, bin []byte, ex Exports) (*Module, error) {
	rt := wazero.NewRuntime(ctx)
	m := &Module{rt: rt, ex: ex, ctx: context.WithoutCancel(ctx)}

	if err := m.instantiate(ctx, bin); err != nil {
		rt.Close(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Module) instantiate(ctx context.Context, bin []byte) error {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, m.rt); err != nil {
		return fmt.Errorf("wasi imports: %w", err)
	}
	_, err := m.rt.NewHostModuleBuilder(m.ex.HostModule).
		NewFunctionBuilder().
		WithFunc(func(context.Context) {
			if m.onGameOver != nil {
				m.onGameOver()
			}
		}).
		Export(m.ex.GameOverFunc).
		Instantiate(ctx)
	if err != nil {
		return fmt.Errorf("host module: %w", err)
	}

	compiled, err := m.rt.CompileModule(ctx, bin)
	if err != nil {
		return fmt.Errorf("compile engine: %w", err)
	}
	cfg := wazero.NewModuleConfig().WithName("engine").WithStartFunctions("_initialize")
	mod, err := m.rt.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return fmt.Errorf("instantiate engine: %w", err)
	}
	m.mod = mod

	if mod.ExportedMemory(m.ex.Memory) == nil {
		return fmt.Errorf("%w: memory %q", ErrMissingExport, m.ex.Memory)
	}
	fns := []struct {
		name string
		dst  *api.Function
	}{
		{m.ex.AdvanceTick, &m.tick},
		{m.ex.SetDirection, &m.setDir},
		{m.ex.SetDifficulty, &m.setDiff},
		{m.ex.Start, &m.start},
		{m.ex.ResetGame, &m.reset},
		{m.ex.Random, &m.random},
		{m.ex.SetLookupEntry, &m.setLookup},
	}
	for _, f := range fns {
		fn := mod.ExportedFunction(f.name)
		if fn == nil {
			return fmt.Errorf("%w: function %q", ErrMissingExport, f.name)
		}
		*f.dst = fn
	}

	globals := []struct {
		name string
		dst  *api.MutableGlobal
	}{
		{m.ex.RandomState, &m.state},
		{m.ex.RandomInc, &m.inc},
	}
	for _, g := range globals {
		mg, ok := mod.ExportedGlobal(g.name).(api.MutableGlobal)
		if !ok {
			return fmt.Errorf("%w: mutable global %q", ErrMissingExport, g.name)
		}
		*g.dst = mg
	}
	return nil
}

// SetGameOverHandler installs the callback invoked when the engine calls its
// game-over import.
func (m *Module) SetGameOverHandler(fn func()) { m.onGameOver = fn }

func (m *Module) call(name string, fn api.Function, params ...uint64) error {
	if _, err := fn.Call(m.ctx, params...); err != nil {
		return fmt.Errorf("engine %s: %w", name, err)
	}
	return nil
}

func (m *Module) AdvanceTick() error { return m.call(m.ex.AdvanceTick, m.tick) }

func (m *Module) SetDirection(code int32) error {
	return m.call(m.ex.SetDirection, m.setDir, api.EncodeI32(code))
}

func (m *Module) SetDifficulty(code int32) error {
	return m.call(m.ex.SetDifficulty, m.setDiff, api.EncodeI32(code))
}

func (m *Module) Start() error     { return m.call(m.ex.Start, m.start) }
func (m *Module) ResetGame() error { return m.call(m.ex.ResetGame, m.reset) }

func (m *Module) SetLookupEntry(index, value int32) error {
	return m.call(m.ex.SetLookupEntry, m.setLookup, api.EncodeI32(index), api.EncodeI32(value))
}

func (m *Module) SeedRandom(seed, seq uint64) error {
	return SeedPCG(moduleGenerator{m}, seed, seq)
}

func (m *Module) Memory() Memory { return m.mod.ExportedMemory(m.ex.Memory) }

// Close releases the runtime. The engine is unusable afterwards.
func (m *Module) Close(ctx context.Context) error { return m.rt.Close(ctx) }

type moduleGenerator struct{ m *Module }

func (g moduleGenerator) State() uint64     { return g.m.state.Get() }
func (g moduleGenerator) SetState(v uint64) { g.m.state.Set(fit(g.m.state, v)) }
func (g moduleGenerator) SetInc(v uint64)   { g.m.inc.Set(fit(g.m.inc, v)) }
func (g moduleGenerator) Step() error       { return g.m.call(g.m.ex.Random, g.m.random) }

// fit truncates v to the width of an i32 global.
func fit(g api.Global, v uint64) uint64 {
	if g.Type() == api.ValueTypeI32 {
		return v & 0xFFFFFFFF
	}
	return v
}
