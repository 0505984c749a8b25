package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQTableHoldsOnlyLegalPairs(t *testing.T) {
	cases := []struct {
		width, height int
		entries       int
	}{
		{width: 5, height: 5, entries: 80},
		{width: 3, height: 2, entries: 14},
		{width: 4, height: 1, entries: 6},
		{width: 1, height: 3, entries: 4},
	}
	for _, tc := range cases {
		env := openMaze(t, tc.width, tc.height, Position{}, Position{X: tc.width - 1, Y: tc.height - 1})
		table, err := NewQTable(env)
		require.NoError(t, err)
		assert.Equal(t, tc.entries, table.Len(), "%dx%d", tc.width, tc.height)

		count := 0
		for y := -1; y <= tc.height; y++ {
			for x := -1; x <= tc.width; x++ {
				s := NewState(x, y)
				for _, a := range Actions {
					want := env.Inside(s) && env.Inside(Apply(a, s))
					assert.Equal(t, want, table.Has(s, a), "%v %s", s.Pos, a)
					if want {
						count++
						v, err := table.Get(s, a)
						require.NoError(t, err)
						assert.Zero(t, v)
					}
				}
			}
		}
		assert.Equal(t, table.Len(), count)
	}
}

func TestNewQTableRejectsSingleCell(t *testing.T) {
	env, err := NewEnvironment([][]int{{2}}, Position{}, Position{})
	require.NoError(t, err)
	table, err := NewQTable(env)
	assert.ErrorIs(t, err, ErrMissingEntry)
	assert.Nil(t, table)
}

func TestQTableGetSetUnknownKey(t *testing.T) {
	table, err := NewQTable(referenceMaze(t))
	require.NoError(t, err)

	_, err = table.Get(NewState(0, 0), Up)
	assert.ErrorIs(t, err, ErrMissingEntry)
	assert.ErrorIs(t, table.Set(NewState(4, 4), Right, 1), ErrMissingEntry)
	assert.ErrorIs(t, table.Set(NewState(1, 1), Action(9), 1), ErrMissingEntry)
	assert.Equal(t, 80, table.Len())
}

func TestQTableCloneIsIndependent(t *testing.T) {
	table, err := NewQTable(referenceMaze(t))
	require.NoError(t, err)
	require.NoError(t, table.Set(NewState(1, 1), Up, 3))

	clone := table.Clone()
	require.NoError(t, table.Set(NewState(1, 1), Up, 7))

	v, err := clone.Get(NewState(1, 1), Up)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, table.Len(), clone.Len())
}

func TestBestActionPicksMaximum(t *testing.T) {
	env := referenceMaze(t)
	table, err := NewQTable(env)
	require.NoError(t, err)
	s := NewState(2, 2)
	require.NoError(t, table.Set(s, Down, 4))
	require.NoError(t, table.Set(s, Right, 9))
	require.NoError(t, table.Set(s, Left, -2))

	value, action, err := table.BestAction(s, env)
	require.NoError(t, err)
	assert.Equal(t, Right, action)
	assert.Equal(t, 9.0, value)
}

func TestBestActionTieGoesToFirstLegalAction(t *testing.T) {
	env := referenceMaze(t)
	table, err := NewQTable(env)
	require.NoError(t, err)

	// all zero: interior cells pick Up
	_, action, err := table.BestAction(NewState(2, 2), env)
	require.NoError(t, err)
	assert.Equal(t, Up, action)

	// Up is illegal on the top row, so Down is the first candidate
	_, action, err = table.BestAction(NewState(2, 0), env)
	require.NoError(t, err)
	assert.Equal(t, Down, action)

	s := NewState(2, 2)
	require.NoError(t, table.Set(s, Left, 5))
	require.NoError(t, table.Set(s, Right, 5))
	for i := 0; i < 3; i++ {
		value, action, err := table.BestAction(s, env)
		require.NoError(t, err)
		assert.Equal(t, Left, action)
		assert.Equal(t, 5.0, value)
	}
}

func TestBestActionFailsOnInconsistentTable(t *testing.T) {
	small := openMaze(t, 2, 2, Position{}, Position{X: 1, Y: 1})
	table, err := NewQTable(small)
	require.NoError(t, err)

	large := openMaze(t, 3, 3, Position{}, Position{X: 2, Y: 2})
	_, _, err = table.BestAction(NewState(2, 2), large)
	assert.ErrorIs(t, err, ErrMissingEntry)

	single := &Environment{Maze: [][]int{{0}}}
	_, _, err = table.BestAction(NewState(0, 0), single)
	assert.ErrorIs(t, err, ErrMissingEntry)
}

func TestStateValues(t *testing.T) {
	env := openMaze(t, 2, 2, Position{}, Position{X: 1, Y: 1})
	table, err := NewQTable(env)
	require.NoError(t, err)
	require.NoError(t, table.Set(NewState(0, 0), Right, 2))
	require.NoError(t, table.Set(NewState(0, 0), Down, -1))
	require.NoError(t, table.Set(NewState(1, 1), Up, -3))
	require.NoError(t, table.Set(NewState(1, 1), Left, -4))

	assert.Equal(t, [][]float64{{2, 0}, {0, -3}}, table.StateValues())
}
