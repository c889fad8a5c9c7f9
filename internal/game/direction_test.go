package game

import (
	"errors"
	"testing"

	"wasmsnake/internal/engine/enginetest"
)

func TestDirectionInitialState(t *testing.T) {
	c := NewDirectionController(enginetest.New(1, 1))
	if c.Current() != Right {
		t.Fatalf("initial direction = %s, want right", c.Current())
	}
	if !c.GateOpen() {
		t.Fatal("gate should start open")
	}
}

func TestDirectionAntiReversal(t *testing.T) {
	all := []Direction{Up, Right, Down, Left}
	for _, cur := range all {
		for _, req := range all {
			cur, req := cur, req
			t.Run(cur.String()+"->"+req.String(), func(t *testing.T) {
				e := enginetest.New(1, 1)
				c := NewDirectionController(e)
				c.current = cur

				ok, err := c.Propose(req)
				if err != nil {
					t.Fatal(err)
				}
				orthogonal := cur.Vertical() != req.Vertical()
				if ok != orthogonal {
					t.Fatalf("accepted = %v, want %v", ok, orthogonal)
				}
				if !ok {
					if c.Current() != cur || !c.GateOpen() || len(e.Directions) != 0 {
						t.Fatal("rejected proposal mutated state")
					}
					return
				}
				if c.Current() != req || c.GateOpen() {
					t.Fatal("accepted proposal did not update state")
				}
				if len(e.Directions) != 1 || e.Directions[0] != int32(req) {
					t.Fatalf("engine saw %v", e.Directions)
				}
			})
		}
	}
}

func TestDirectionConcreteCases(t *testing.T) {
	tests := []struct {
		req  Direction
		want bool
	}{
		{Left, false},
		{Right, false},
		{Up, true},
		{Down, true},
	}
	for _, tt := range tests {
		c := NewDirectionController(enginetest.New(1, 1))
		if ok, _ := c.Propose(tt.req); ok != tt.want {
			t.Errorf("right -> %s: accepted = %v, want %v", tt.req, ok, tt.want)
		}
	}
}

func TestDirectionOneTurnPerTick(t *testing.T) {
	e := enginetest.New(1, 1)
	c := NewDirectionController(e)

	if ok, _ := c.Propose(Up); !ok {
		t.Fatal("first turn rejected")
	}
	// Left is orthogonal to Up but the gate is closed.
	if ok, _ := c.Propose(Left); ok {
		t.Fatal("second turn in the same tick accepted")
	}
	if c.Current() != Up {
		t.Fatalf("current = %s", c.Current())
	}

	c.OpenGate()
	if ok, _ := c.Propose(Left); !ok {
		t.Fatal("turn after gate reset rejected")
	}
	if got := e.Directions; len(got) != 2 || got[0] != int32(Up) || got[1] != int32(Left) {
		t.Fatalf("engine saw %v", got)
	}
}

func TestDirectionEngineFailure(t *testing.T) {
	e := enginetest.New(1, 1)
	e.FailDirection = true
	c := NewDirectionController(e)

	ok, err := c.Propose(Up)
	if ok || !errors.Is(err, enginetest.ErrInjected) {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if c.Current() != Right || !c.GateOpen() {
		t.Fatal("failed forward changed controller state")
	}
}

func TestDirectionRejectsInvalid(t *testing.T) {
	c := NewDirectionController(enginetest.New(1, 1))
	if ok, _ := c.Propose(Direction(7)); ok {
		t.Fatal("invalid direction accepted")
	}
}
