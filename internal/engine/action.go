package engine

import "fmt"

type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

const numActions = 4

// Actions is the canonical enumeration order. Greedy lookups break ties in
// favour of the earliest action in this slice.
var Actions = []Action{Up, Down, Left, Right}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Symbol returns the arrow printed for a in a traced path.
func (a Action) Symbol() string {
	switch a {
	case Up:
		return "↑"
	case Down:
		return "↓"
	case Left:
		return "←"
	case Right:
		return "→"
	}
	return "?"
}

func (a Action) valid() bool {
	return a >= 0 && a < numActions
}

// Apply shifts s one cell in the direction of a. It never checks bounds.
func Apply(a Action, s State) State {
	next := s
	switch a {
	case Up:
		next.Pos.Y--
	case Down:
		next.Pos.Y++
	case Left:
		next.Pos.X--
	case Right:
		next.Pos.X++
	}
	return next
}
