package engine

import (
	"fmt"
	"strings"
)

// Path is the ordered sequence of greedy actions taken from the start point.
type Path []Action

func (p Path) Symbols() []string {
	symbols := make([]string, len(p))
	for i, a := range p {
		symbols[i] = a.Symbol()
	}
	return symbols
}

func (p Path) String() string {
	return strings.Join(p.Symbols(), "")
}

// Positions replays p from start. The result includes start, so it is one
// longer than p.
func (p Path) Positions(start Position) []Position {
	positions := make([]Position, 0, len(p)+1)
	s := State{Pos: start}
	positions = append(positions, s.Pos)
	for _, a := range p {
		s = Apply(a, s)
		positions = append(positions, s.Pos)
	}
	return positions
}

func (p Path) End(start Position) Position {
	positions := p.Positions(start)
	return positions[len(positions)-1]
}

// ExtractPath follows the greedy action from env.Start until it leaves a goal
// cell or lands on env.End. maxSteps bounds the walk (zero picks a bound from
// the maze size); hitting it returns the partial path with ErrNoConvergence.
func ExtractPath(table *QTable, env *Environment, maxSteps int) (Path, error) {
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps(env)
	}
	state := State{Pos: env.Start}
	path := make(Path, 0, env.Width()+env.Height())
	for {
		if len(path) >= maxSteps {
			return path, fmt.Errorf("%w: stopped at %v after %d steps", ErrNoConvergence, state.Pos, len(path))
		}
		_, action, err := table.BestAction(state, env)
		if err != nil {
			return path, err
		}
		path = append(path, action)
		cell, err := env.CellAt(state.Pos)
		if err != nil {
			return path, err
		}
		state = Apply(action, state)
		if cell == CellGoal || state.Pos == env.End {
			return path, nil
		}
	}
}

func defaultMaxSteps(env *Environment) int {
	return 4 * env.Width() * env.Height()
}
