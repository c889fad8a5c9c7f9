package game

import "fmt"

type Direction int32

// Values are the engine's direction codes.
const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int32(d))
}

func (d Direction) Valid() bool { return d >= Up && d <= Left }

// Vertical reports whether d lies on the up/down axis.
func (d Direction) Vertical() bool { return d&1 == 0 }

// DirectionSink receives accepted direction codes. The engine implements it.
type DirectionSink interface {
	SetDirection(code int32) error
}

// DirectionController accepts at most one turn per tick and only onto the
// axis orthogonal to the current heading.
type DirectionController struct {
	sink    DirectionSink
	current Direction
	gate    bool
}

func NewDirectionController(sink DirectionSink) *DirectionController {
	return &DirectionController{sink: sink, current: Right, gate: true}
}

func (c *DirectionController) Current() Direction { return c.current }
func (c *DirectionController) GateOpen() bool     { return c.gate }

// OpenGate allows one more turn. The driver calls it once per tick.
func (c *DirectionController) OpenGate() { c.gate = true }

// Propose requests a turn. It returns false with no side effect when the gate
// is closed, when requested shares the current axis, or when the engine
// refuses the new direction (in which case err is set).
func (c *DirectionController) Propose(requested Direction) (bool, error) {
	if !c.gate || !requested.Valid() {
		return false, nil
	}
	if requested.Vertical() == c.current.Vertical() {
		return false, nil
	}
	if err := c.sink.SetDirection(int32(requested)); err != nil {
		return false, fmt.Errorf("set direction %s: %w", requested, err)
	}
	c.current = requested
	c.gate = false
	return true, nil
}

// Push forwards the current direction without going through the gate. Used
// once at startup so the engine starts with the driver's heading.
func (c *DirectionController) Push() error {
	return c.sink.SetDirection(int32(c.current))
}
