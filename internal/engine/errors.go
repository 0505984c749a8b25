package engine

import "errors"

var (
	ErrMalformedInput  = errors.New("malformed maze definition")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrMissingEntry    = errors.New("missing q-table entry")
	ErrInvalidCellCode = errors.New("invalid cell code")
	ErrNoConvergence   = errors.New("greedy rollout did not reach the goal")
)
