package game

import "fmt"

// Status is the text shown next to the playfield: current difficulty and
// whether the engine reported game over since the last reset.
type Status struct {
	Difficulty Difficulty
	Over       bool
}

// Apply folds one driver event into s and reports whether the text changed.
func (s *Status) Apply(e Event) bool {
	prev := *s
	switch e.Type {
	case EventGameOver:
		s.Over = true
	case EventReset:
		s.Over = false
	case EventDifficulty:
		s.Difficulty = e.Difficulty
	}
	return *s != prev
}

func (s Status) String() string {
	if s.Over {
		return fmt.Sprintf("game over - press R to play again (%s)", s.Difficulty)
	}
	return fmt.Sprintf("%s - arrows steer, 1/2/3 speed, R restart", s.Difficulty)
}

// Watch keeps s current with the driver's events and calls onChange with
// the new text whenever it changes.
func (s *Status) Watch(bus *EventBus, onChange func(string)) {
	h := func(e Event) {
		if s.Apply(e) {
			onChange(s.String())
		}
	}
	bus.Subscribe(EventGameOver, h)
	bus.Subscribe(EventReset, h)
	bus.Subscribe(EventDifficulty, h)
}
