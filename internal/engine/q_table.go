package engine

import "fmt"

// QTable maps legal (state, action) pairs to values. Storage is dense over the
// grid's bounding box; live marks which pairs are actual entries.
type QTable struct {
	width  int
	height int
	size   int
	data   [][][]float64
	live   [][][]bool
}

func newQTable(width, height int) *QTable {
	data := make([][][]float64, height)
	live := make([][][]bool, height)
	for y := 0; y < height; y++ {
		data[y] = make([][]float64, width)
		live[y] = make([][]bool, width)
		for x := 0; x < width; x++ {
			data[y][x] = make([]float64, numActions)
			live[y][x] = make([]bool, numActions)
		}
	}
	return &QTable{width: width, height: height, data: data, live: live}
}

// NewQTable creates one zero-valued entry for every (state, action) pair of env
// whose transition stays on the grid. A grid with a cell that has no legal
// action at all (1x1) cannot be learned and is rejected.
func NewQTable(env *Environment) (*QTable, error) {
	width, height := env.Width(), env.Height()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: maze has no cells", ErrMalformedInput)
	}
	q := newQTable(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s := NewState(x, y)
			legal := 0
			for _, a := range Actions {
				if !Inside(Apply(a, s), width, height) {
					continue
				}
				q.live[y][x][a] = true
				legal++
			}
			if legal == 0 {
				return nil, fmt.Errorf("%w: %v has no legal action on a %dx%d maze", ErrMissingEntry, s.Pos, width, height)
			}
			q.size += legal
		}
	}
	return q, nil
}

func (q *QTable) Width() int  { return q.width }
func (q *QTable) Height() int { return q.height }

// Len is the number of entries.
func (q *QTable) Len() int { return q.size }

func (q *QTable) Has(s State, a Action) bool {
	if !a.valid() || !Inside(s, q.width, q.height) {
		return false
	}
	return q.live[s.Pos.Y][s.Pos.X][a]
}

func (q *QTable) Get(s State, a Action) (float64, error) {
	if !q.Has(s, a) {
		return 0, fmt.Errorf("%w: %v %s", ErrMissingEntry, s.Pos, a)
	}
	return q.data[s.Pos.Y][s.Pos.X][a], nil
}

// Set overwrites an existing entry. It never adds keys.
func (q *QTable) Set(s State, a Action, value float64) error {
	if !q.Has(s, a) {
		return fmt.Errorf("%w: %v %s", ErrMissingEntry, s.Pos, a)
	}
	q.data[s.Pos.Y][s.Pos.X][a] = value
	return nil
}

func (q *QTable) Clone() *QTable {
	c := newQTable(q.width, q.height)
	c.size = q.size
	for y := 0; y < q.height; y++ {
		for x := 0; x < q.width; x++ {
			copy(c.data[y][x], q.data[y][x])
			copy(c.live[y][x], q.live[y][x])
		}
	}
	return c
}

// Each visits every entry row by row, then column, then in Actions order.
// It stops at the first error fn returns.
func (q *QTable) Each(fn func(s State, a Action, value float64) error) error {
	for y := 0; y < q.height; y++ {
		for x := 0; x < q.width; x++ {
			for _, a := range Actions {
				if !q.live[y][x][a] {
					continue
				}
				if err := fn(NewState(x, y), a, q.data[y][x][a]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// BestAction returns the highest valued action whose transition keeps the agent
// inside env. Only a strictly greater value replaces the current best, so ties
// go to the earliest action in Actions.
func (q *QTable) BestAction(s State, env *Environment) (float64, Action, error) {
	var (
		bestValue  float64
		bestAction Action
		found      bool
	)
	for _, a := range Actions {
		if !env.Inside(Apply(a, s)) {
			continue
		}
		value, err := q.Get(s, a)
		if err != nil {
			return 0, 0, err
		}
		if !found || value > bestValue {
			bestValue = value
			bestAction = a
			found = true
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("%w: no legal action from %v", ErrMissingEntry, s.Pos)
	}
	return bestValue, bestAction, nil
}

func (q *QTable) maxValue(x, y int) (float64, bool) {
	var (
		max   float64
		found bool
	)
	for a := 0; a < numActions; a++ {
		if !q.live[y][x][a] {
			continue
		}
		if !found || q.data[y][x][a] > max {
			max = q.data[y][x][a]
			found = true
		}
	}
	return max, found
}

// StateValues returns the greedy value of every cell, indexed [y][x].
func (q *QTable) StateValues() [][]float64 {
	values := make([][]float64, q.height)
	for y := 0; y < q.height; y++ {
		values[y] = make([]float64, q.width)
		for x := 0; x < q.width; x++ {
			values[y][x], _ = q.maxValue(x, y)
		}
	}
	return values
}
