package agents

import "fmt"

// Action is the symbol a strategy proposes each turn. Only the five declared
// symbols are legal; anything else is a protocol violation.
type Action rune

const (
	MOVE       Action = 'A'
	TURN_RIGHT Action = 'D'
	TURN_LEFT  Action = 'E'
	SHOOT      Action = 'T'
	SHARE      Action = 'C'
)

// Actions lists the legal actions.
var Actions = []Action{MOVE, TURN_RIGHT, TURN_LEFT, SHOOT, SHARE}

// Valid reports whether a is one of the five legal actions.
func (a Action) Valid() bool {
	switch a {
	case MOVE, TURN_RIGHT, TURN_LEFT, SHOOT, SHARE:
		return true
	}
	return false
}

func (a Action) String() string {
	switch a {
	case MOVE:
		return "move"
	case TURN_RIGHT:
		return "turn-right"
	case TURN_LEFT:
		return "turn-left"
	case SHOOT:
		return "shoot"
	case SHARE:
		return "share"
	}
	return fmt.Sprintf("invalid(%q)", rune(a))
}
