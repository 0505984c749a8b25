// Package render prints mazes, learned paths and training charts.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"qmaze/internal/engine"
)

type Printer struct {
	w  io.Writer
	au aurora.Aurora
}

// NewPrinter writes to w, with ANSI colours when colors is set.
func NewPrinter(w io.Writer, colors bool) *Printer {
	return &Printer{w: w, au: aurora.NewAurora(colors)}
}

// Maze draws the grid with the path's arrows on the cells it leaves.
// S marks the start marker, G the goal and * the endpoint when it carries no
// goal code.
func (p *Printer) Maze(env *engine.Environment, path engine.Path) {
	arrows := make(map[engine.Position]engine.Action, len(path))
	for i, pos := range path.Positions(env.Start)[:len(path)] {
		if _, seen := arrows[pos]; !seen {
			arrows[pos] = path[i]
		}
	}
	for y, row := range env.Maze {
		for x, cell := range row {
			pos := engine.Position{X: x, Y: y}
			fmt.Fprint(p.w, " ", p.cell(env, pos, cell, arrows))
			fmt.Fprint(p.w, p.au.Gray(12, " |"))
		}
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) cell(env *engine.Environment, pos engine.Position, cell int, arrows map[engine.Position]engine.Action) aurora.Value {
	if a, ok := arrows[pos]; ok {
		return p.au.Cyan(a.Symbol())
	}
	switch {
	case cell == engine.CellGoal:
		return p.au.Green("G")
	case cell == engine.CellStart:
		return p.au.Yellow("S")
	case pos == env.End:
		return p.au.Green("*")
	}
	return p.au.Blue(".")
}

// Path prints one arrow per line, then the whole move list.
func (p *Printer) Path(path engine.Path) {
	for _, a := range path {
		fmt.Fprintln(p.w, a.Symbol())
	}
	fmt.Fprintf(p.w, "moves[%s]\n", strings.Join(path.Symbols(), ", "))
}

// Values prints the greedy value of every cell.
func (p *Printer) Values(table *engine.QTable) {
	for _, row := range table.StateValues() {
		for _, v := range row {
			fmt.Fprint(p.w, p.au.Blue(fmt.Sprintf("%14.2f", v)))
			fmt.Fprint(p.w, p.au.Gray(12, " |"))
		}
		fmt.Fprintln(p.w)
	}
}

// Environment prints the raw grid with its start and end points.
func (p *Printer) Environment(env *engine.Environment) {
	fmt.Fprintln(p.w, env.String())
	fmt.Fprintf(p.w, "startpoint: %v\nendpoint: %v\n", env.Start, env.End)
}
