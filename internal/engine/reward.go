package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	GoalReward     = 1e10
	StartPenalty   = -1e8
	FreeReward     = 1e6
	DistanceWeight = 10.0
)

// Reward scores arriving in s. Free cells are shaped by their Euclidean
// distance to the endpoint; re-entering the start cell is penalised.
func Reward(env *Environment, s State) (float64, error) {
	cell, err := env.CellAt(s.Pos)
	if err != nil {
		return 0, err
	}
	switch cell {
	case CellGoal:
		return GoalReward, nil
	case CellStart:
		return StartPenalty, nil
	case CellFree:
		return FreeReward - DistanceWeight*distance(s.Pos, env.End), nil
	}
	return 0, fmt.Errorf("reward at %v: %w: %d", s.Pos, ErrInvalidCellCode, cell)
}

// rewardGrid evaluates Reward once for every cell, indexed [y][x].
func rewardGrid(env *Environment) ([][]float64, error) {
	grid := make([][]float64, env.Height())
	for y := range grid {
		grid[y] = make([]float64, env.Width())
		for x := range grid[y] {
			r, err := Reward(env, NewState(x, y))
			if err != nil {
				return nil, err
			}
			grid[y][x] = r
		}
	}
	return grid, nil
}

func distance(a, b Position) float64 {
	v := [4]float64{float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)}
	return floats.Distance(v[:2], v[2:], 2)
}
