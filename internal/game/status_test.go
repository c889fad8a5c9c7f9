package game

import (
	"strings"
	"testing"
)

func TestStatusFollowsDriver(t *testing.T) {
	f := newFixture(t)
	st := Status{Difficulty: f.drv.Difficulty()}
	var lines []string
	st.Watch(f.drv.Events(), func(s string) { lines = append(lines, s) })

	f.drv.Handle(ActionHard)
	f.drv.GameOver()
	f.drv.GameOver()
	f.drv.Handle(ActionRefresh)

	if len(lines) != 3 {
		t.Fatalf("status changes = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "hard") {
		t.Errorf("after difficulty: %q", lines[0])
	}
	if !strings.Contains(lines[1], "game over") {
		t.Errorf("after game over: %q", lines[1])
	}
	if strings.Contains(lines[2], "game over") {
		t.Errorf("after reset: %q", lines[2])
	}
}

func TestStatusIgnoresOtherEvents(t *testing.T) {
	st := Status{Difficulty: Normal}
	if st.Apply(Event{Type: EventTurn, Direction: Up}) {
		t.Fatal("turn changed the status")
	}
	if st.Apply(Event{Type: EventDifficulty, Difficulty: Normal}) {
		t.Fatal("same difficulty reported as a change")
	}
}
