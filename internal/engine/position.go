package engine

import "fmt"

// Position is a zero-based grid coordinate; x grows to the right, y grows down.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// State is the agent's current cell.
type State struct {
	Pos Position
}

func NewState(x, y int) State {
	return State{Pos: Position{X: x, Y: y}}
}

// Inside reports whether s lies on a width x height grid.
func Inside(s State, width, height int) bool {
	return s.Pos.X >= 0 && s.Pos.X < width && s.Pos.Y >= 0 && s.Pos.Y < height
}
