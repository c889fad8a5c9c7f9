package engine

import "fmt"

// Generator exposes the two mutable generator globals and the entry point that
// advances them once.
type Generator interface {
	State() uint64
	SetState(v uint64)
	SetInc(v uint64)
	Step() error
}

// SeedPCG applies the PCG32 srandom sequence: zero the state, mix once,
// add the seed, mix again. The increment must be odd.
func SeedPCG(g Generator, seed, seq uint64) error {
	g.SetInc(seq<<1 | 1)
	g.SetState(0)
	if err := g.Step(); err != nil {
		return fmt.Errorf("seed mix 1: %w", err)
	}
	g.SetState(g.State() + seed)
	if err := g.Step(); err != nil {
		return fmt.Errorf("seed mix 2: %w", err)
	}
	return nil
}
