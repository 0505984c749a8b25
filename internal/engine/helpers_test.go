package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceMaze is the 5x5 maze with the goal in the top-left corner and the
// start marker at (3,4).
func referenceMaze(t testing.TB) *Environment {
	t.Helper()
	env, err := NewEnvironment([][]int{
		{2, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0},
	}, Position{X: 3, Y: 4}, Position{X: 0, Y: 0})
	require.NoError(t, err)
	return env
}

func openMaze(t testing.TB, width, height int, start, end Position) *Environment {
	t.Helper()
	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
	}
	grid[end.Y][end.X] = CellGoal
	env, err := NewEnvironment(grid, start, end)
	require.NoError(t, err)
	return env
}
