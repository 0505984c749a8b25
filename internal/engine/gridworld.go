package engine

import (
	"fmt"
	"strings"
)

// Cell codes used in maze definitions.
const (
	CellFree  = 0
	CellStart = 1
	CellGoal  = 2
)

// Environment is a rectangular maze. It is read-only once validated.
type Environment struct {
	Maze  [][]int  `json:"maze" yaml:"maze"`
	End   Position `json:"endpoint" yaml:"endpoint"`
	Start Position `json:"startpoint" yaml:"startpoint"`
}

// NewEnvironment copies maze and validates the result.
func NewEnvironment(maze [][]int, start, end Position) (*Environment, error) {
	env := &Environment{
		Maze:  cloneGrid(maze),
		Start: start,
		End:   end,
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Environment) Width() int {
	if len(e.Maze) == 0 {
		return 0
	}
	return len(e.Maze[0])
}

func (e *Environment) Height() int {
	return len(e.Maze)
}

func (e *Environment) Inside(s State) bool {
	return Inside(s, e.Width(), e.Height())
}

// CellAt returns the cell code at p.
func (e *Environment) CellAt(p Position) (int, error) {
	if !e.Inside(State{Pos: p}) {
		return 0, fmt.Errorf("%w: %v on a %dx%d maze", ErrOutOfBounds, p, e.Width(), e.Height())
	}
	return e.Maze[p.Y][p.X], nil
}

// Validate checks the grid is non-empty and rectangular, that every cell
// carries a known code and that the start and end points lie on the grid.
func (e *Environment) Validate() error {
	width := e.Width()
	if e.Height() == 0 || width == 0 {
		return fmt.Errorf("%w: maze has no cells", ErrMalformedInput)
	}
	for y, row := range e.Maze {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedInput, y, len(row), width)
		}
		for x, cell := range row {
			switch cell {
			case CellFree, CellStart, CellGoal:
			default:
				return fmt.Errorf("%w: %d at %v", ErrInvalidCellCode, cell, Position{X: x, Y: y})
			}
		}
	}
	if !e.Inside(State{Pos: e.Start}) {
		return fmt.Errorf("startpoint %v: %w", e.Start, ErrOutOfBounds)
	}
	if !e.Inside(State{Pos: e.End}) {
		return fmt.Errorf("endpoint %v: %w", e.End, ErrOutOfBounds)
	}
	return nil
}

// String dumps the grid row by row, the way maze files list it.
func (e *Environment) String() string {
	var b strings.Builder
	b.WriteString("[\n")
	for _, row := range e.Maze {
		b.WriteString("[")
		for _, cell := range row {
			fmt.Fprintf(&b, "%d, ", cell)
		}
		b.WriteString("],\n")
	}
	b.WriteString("]")
	return b.String()
}

func cloneGrid(grid [][]int) [][]int {
	if grid == nil {
		return nil
	}
	copied := make([][]int, len(grid))
	for i, row := range grid {
		copied[i] = make([]int, len(row))
		copy(copied[i], row)
	}
	return copied
}
