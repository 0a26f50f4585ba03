package models

import "time"

// Direction is one of the five joystick positions.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionMiddle
)

var directionNames = map[Direction]string{
	DirectionNone:   "none",
	DirectionUp:     "up",
	DirectionDown:   "down",
	DirectionLeft:   "left",
	DirectionRight:  "right",
	DirectionMiddle: "middle",
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return "unknown"
}

// ParseDirection maps a name such as "left" back to its Direction.
func ParseDirection(s string) (Direction, bool) {
	for d, n := range directionNames {
		if n == s && d != DirectionNone {
			return d, true
		}
	}
	return DirectionNone, false
}

// Action is what happened to the stick in a given direction.
type Action int

const (
	ActionPressed Action = iota
	ActionReleased
	ActionHeld
)

func (a Action) String() string {
	switch a {
	case ActionPressed:
		return "pressed"
	case ActionReleased:
		return "released"
	case ActionHeld:
		return "held"
	}
	return "unknown"
}

// StickEvent is a single joystick event.
type StickEvent struct {
	Direction Direction
	Action    Action
	Time      time.Time
}
