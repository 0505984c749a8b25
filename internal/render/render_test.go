package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qmaze/internal/engine"
)

func smallMaze(t *testing.T) *engine.Environment {
	t.Helper()
	env, err := engine.NewEnvironment([][]int{
		{2, 0, 0},
		{0, 0, 1},
	}, engine.Position{X: 2, Y: 1}, engine.Position{X: 0, Y: 0})
	require.NoError(t, err)
	return env
}

func TestMazeWithoutColors(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Maze(smallMaze(t), engine.Path{engine.Up, engine.Left, engine.Left})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, " G | ← | ← |", lines[0])
	assert.Equal(t, " . | . | ↑ |", lines[1])
}

func TestMazeWithColors(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).Maze(smallMaze(t), nil)
	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "S")
	assert.Contains(t, out, "G")
}

func TestPath(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Path(engine.Path{engine.Up, engine.Right})
	assert.Equal(t, "↑\n→\nmoves[↑, →]\n", buf.String())
}

func TestValuesAndEnvironment(t *testing.T) {
	env := smallMaze(t)
	table, err := engine.NewQTable(env)
	require.NoError(t, err)
	require.NoError(t, table.Set(engine.NewState(1, 0), engine.Left, 12.5))

	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Values(table)
	p.Environment(env)
	out := buf.String()
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "[2, 0, 0, ],")
	assert.Contains(t, out, "startpoint: (2,1)")
	assert.Contains(t, out, "endpoint: (0,0)")
}

func TestConvergenceChart(t *testing.T) {
	reports := []engine.CycleReport{
		{Cycle: 1, MaxDelta: 10, MeanValue: 2},
		{Cycle: 2, MaxDelta: 9, MeanValue: 3.5},
	}
	var buf bytes.Buffer
	require.NoError(t, ConvergenceChart(&buf, reports))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "q-table convergence")
	assert.Contains(t, out, "max delta")
	assert.Contains(t, out, "mean value")
}
