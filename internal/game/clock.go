package game

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

type Difficulty int32

// Values are the engine's difficulty codes.
const (
	Hard   Difficulty = 1
	Normal Difficulty = 2
	Easy   Difficulty = 3
)

func (d Difficulty) String() string {
	switch d {
	case Hard:
		return "hard"
	case Normal:
		return "normal"
	case Easy:
		return "easy"
	}
	return fmt.Sprintf("Difficulty(%d)", int32(d))
}

// Period returns the tick period for d, or 0 if d is not a difficulty.
func (d Difficulty) Period() time.Duration {
	switch d {
	case Hard:
		return HardPeriod
	case Normal:
		return NormalPeriod
	case Easy:
		return EasyPeriod
	}
	return 0
}

// Ticker is a periodic timer handle.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc arms a new ticker.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker. A slow consumer loses ticks rather than
// queueing them, which is the drift we accept.
func NewTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

// DifficultySink receives difficulty codes. The engine implements it.
type DifficultySink interface {
	SetDifficulty(code int32) error
}

// Clock owns the single tick timer. Changing difficulty replaces the timer:
// the old one is stopped before the new one is armed, and C always returns
// the live timer's channel so a tick buffered in a stopped timer never fires.
type Clock struct {
	sink       DifficultySink
	newTicker  TickerFunc
	ticker     Ticker
	difficulty Difficulty
}

func NewClock(sink DifficultySink, newTicker TickerFunc) *Clock {
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &Clock{sink: sink, newTicker: newTicker, difficulty: Normal}
}

func (c *Clock) Difficulty() Difficulty { return c.difficulty }
func (c *Clock) Period() time.Duration  { return c.difficulty.Period() }
func (c *Clock) Running() bool          { return c.ticker != nil }

// C returns the channel of the active timer, or nil (which blocks forever in
// a select) when the clock is stopped.
func (c *Clock) C() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C()
}

// Start tells the engine which difficulty is in effect and arms the timer at
// its period. Calling Start on a running clock re-arms it. If the engine
// refuses, no timer is armed.
func (c *Clock) Start() error {
	if err := c.sink.SetDifficulty(int32(c.difficulty)); err != nil {
		return fmt.Errorf("set difficulty %s: %w", c.difficulty, err)
	}
	c.arm()
	return nil
}

// SetDifficulty switches the tick rate. The engine is told first; if it
// refuses, the clock keeps its difficulty and timer. A stopped clock only
// records d without arming a timer.
func (c *Clock) SetDifficulty(d Difficulty) error {
	if d.Period() == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, int32(d))
	}
	if err := c.sink.SetDifficulty(int32(d)); err != nil {
		return fmt.Errorf("set difficulty %s: %w", d, err)
	}
	c.difficulty = d
	if c.ticker != nil {
		c.arm()
	}
	return nil
}

func (c *Clock) arm() {
	c.Stop()
	c.ticker = c.newTicker(c.difficulty.Period())
}

func (c *Clock) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}
