package game

// Action is a logical input, independent of the device that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionRight
	ActionDown
	ActionLeft
	ActionRefresh
	ActionHard
	ActionNormal
	ActionEasy
)

var actionNames = map[Action]string{
	ActionUp:      "up",
	ActionRight:   "right",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRefresh: "refresh",
	ActionHard:    "hard",
	ActionNormal:  "normal",
	ActionEasy:    "easy",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// ButtonActions is the on-screen button group, in display order.
var ButtonActions = []Action{ActionUp, ActionRight, ActionDown, ActionLeft, ActionRefresh}

// ParseAction resolves a button's action name. Unknown names give ActionNone.
func ParseAction(name string) Action {
	for a, n := range actionNames {
		if n == name {
			return a
		}
	}
	return ActionNone
}

// Direction returns the heading a movement action asks for.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return Up, true
	case ActionRight:
		return Right, true
	case ActionDown:
		return Down, true
	case ActionLeft:
		return Left, true
	}
	return 0, false
}

// Difficulty returns the level a difficulty action selects.
func (a Action) Difficulty() (Difficulty, bool) {
	switch a {
	case ActionHard:
		return Hard, true
	case ActionNormal:
		return Normal, true
	case ActionEasy:
		return Easy, true
	}
	return 0, false
}

// DigitAction maps the number keys 1..3 to difficulty codes 1..3.
func DigitAction(r rune) Action {
	switch r {
	case '1':
		return ActionHard
	case '2':
		return ActionNormal
	case '3':
		return ActionEasy
	}
	return ActionNone
}
