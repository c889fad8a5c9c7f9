package engine

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
)

// A tiny hand-assembled engine:
//
//	tick            pixel[0] += 1
//	set_direction   mem[64] = d
//	set_difficulty  mem[68] = d
//	start           mem[72] = 1
//	reset           pixel[0] = 0
//	random          rng_state = rng_state*3 + rng_inc
//	set_glyph       mem[128+4*i] = v
//	die             calls env.game_over
//
// The framebuffer is 4x2 at offset 0.

func uleb(v int) []byte {
	var b []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}

func sleb(v int32) []byte {
	var b []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0)
		if !done {
			c |= 0x80
		}
		b = append(b, c)
		if done {
			return b
		}
	}
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func vec(items ...[]byte) []byte { return cat(uleb(len(items)), cat(items...)) }
func name(s string) []byte       { return cat(uleb(len(s)), []byte(s)) }
func section(id byte, body []byte) []byte {
	return cat([]byte{id}, uleb(len(body)), body)
}
func i32const(v int32) []byte { return cat([]byte{0x41}, sleb(v)) }

func body(code ...[]byte) []byte {
	b := cat([]byte{0x00}, cat(code...), []byte{0x0b})
	return cat(uleb(len(b)), b)
}

var (
	i32load   = []byte{0x28, 0x02, 0x00}
	i32store  = []byte{0x36, 0x02, 0x00}
	localGet0 = []byte{0x20, 0x00}
	localGet1 = []byte{0x20, 0x01}
)

func testEngineWasm() []byte {
	types := vec(
		[]byte{0x60, 0x00, 0x00},
		[]byte{0x60, 0x01, 0x7f, 0x00},
		[]byte{0x60, 0x02, 0x7f, 0x7f, 0x00},
	)
	imports := vec(cat(name("env"), name("game_over"), []byte{0x00, 0x00}))
	funcs := vec([]byte{0}, []byte{1}, []byte{1}, []byte{0}, []byte{0}, []byte{0}, []byte{2}, []byte{0})
	memory := vec([]byte{0x00, 0x01})
	globals := vec(
		[]byte{0x7e, 0x01, 0x42, 0x00, 0x0b},
		[]byte{0x7e, 0x01, 0x42, 0x00, 0x0b},
	)
	exp := func(n string, kind, idx byte) []byte { return cat(name(n), []byte{kind, idx}) }
	exports := vec(
		exp("memory", 0x02, 0),
		exp("tick", 0x00, 1),
		exp("set_direction", 0x00, 2),
		exp("set_difficulty", 0x00, 3),
		exp("start", 0x00, 4),
		exp("reset", 0x00, 5),
		exp("random", 0x00, 6),
		exp("set_glyph", 0x00, 7),
		exp("die", 0x00, 8),
		exp("rng_state", 0x03, 0),
		exp("rng_inc", 0x03, 1),
	)
	code := vec(
		body(i32const(0), i32const(0), i32load, i32const(1), []byte{0x6a}, i32store),
		body(i32const(64), localGet0, i32store),
		body(i32const(68), localGet0, i32store),
		body(i32const(72), i32const(1), i32store),
		body(i32const(0), i32const(0), i32store),
		body([]byte{0x23, 0x00}, []byte{0x42, 0x03}, []byte{0x7e}, []byte{0x23, 0x01}, []byte{0x7c}, []byte{0x24, 0x00}),
		body(localGet0, i32const(4), []byte{0x6c}, i32const(128), []byte{0x6a}, localGet1, i32store),
		body([]byte{0x10, 0x00}),
	)
	return cat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(1, types),
		section(2, imports),
		section(3, funcs),
		section(5, memory),
		section(6, globals),
		section(7, exports),
		section(10, code),
	)
}

func loadTestEngine(t *testing.T) *Module {
	t.Helper()
	ctx := context.Background()
	m, err := Load(ctx, testEngineWasm(), DefaultExports)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { m.Close(ctx) })
	return m
}

func readI32(t *testing.T, m *Module, off uint32) int32 {
	t.Helper()
	b, ok := m.Memory().Read(off, 4)
	if !ok {
		t.Fatalf("read %d out of range", off)
	}
	return int32(binary.LittleEndian.Uint32(b))
}

func TestModuleFrameViewIsLive(t *testing.T) {
	m := loadTestEngine(t)
	fs, err := NewFrameSource(m.Memory(), Layout{Width: 4, Height: 2, Offset: 0})
	if err != nil {
		t.Fatal(err)
	}
	view := fs.Frame()
	for i := 1; i <= 3; i++ {
		if err := m.AdvanceTick(); err != nil {
			t.Fatal(err)
		}
		if got := view.At(0, 0); got != int32(i) {
			t.Fatalf("tick %d: view sees %d", i, got)
		}
	}
	if err := m.ResetGame(); err != nil {
		t.Fatal(err)
	}
	if got := fs.Frame().At(0, 0); got != 0 {
		t.Fatalf("after reset pixel = %d", got)
	}
}

func TestModuleSetters(t *testing.T) {
	m := loadTestEngine(t)
	if err := m.SetDirection(3); err != nil {
		t.Fatal(err)
	}
	if err := m.SetDifficulty(1); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	if err := m.SetLookupEntry(2, 0x7BEF); err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		off  uint32
		want int32
	}{
		{64, 3},
		{68, 1},
		{72, 1},
		{136, 0x7BEF},
	}
	for _, c := range checks {
		if got := readI32(t, m, c.off); got != c.want {
			t.Errorf("mem[%d] = %d, want %d", c.off, got, c.want)
		}
	}
}

func TestModuleSeedDeterministic(t *testing.T) {
	const seed, seq = 42, 54
	inc := uint64(seq<<1 | 1)
	want := (inc+seed)*3 + inc

	for i := 0; i < 2; i++ {
		m := loadTestEngine(t)
		if err := m.SeedRandom(seed, seq); err != nil {
			t.Fatal(err)
		}
		if got := (moduleGenerator{m}).State(); got != want {
			t.Fatalf("run %d: state = %d, want %d", i, got, want)
		}
	}
}

func TestModuleGameOverCallback(t *testing.T) {
	m := loadTestEngine(t)
	calls := 0
	m.SetGameOverHandler(func() { calls++ })
	if _, err := m.mod.ExportedFunction("die").Call(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("game over handler called %d times", calls)
	}
}

func TestLoadMissingExport(t *testing.T) {
	ex := DefaultExports
	ex.Random = "shuffle"
	_, err := Load(context.Background(), testEngineWasm(), ex)
	if !errors.Is(err, ErrMissingExport) {
		t.Fatalf("err = %v, want ErrMissingExport", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	if _, err := Load(context.Background(), []byte("not wasm"), DefaultExports); err == nil {
		t.Fatal("expected compile error")
	}
}
