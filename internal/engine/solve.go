package engine

import (
	"errors"

	"github.com/sirupsen/logrus"
)

type Result struct {
	Path    Path
	Table   *QTable
	Reports []CycleReport
	Config  Config
	// Reached is where the rollout stopped.
	Reached Position
}

type SolveOption func(*solveOptions)

type solveOptions struct {
	log     logrus.FieldLogger
	onCycle func(CycleReport)
}

func WithLogger(log logrus.FieldLogger) SolveOption {
	return func(o *solveOptions) { o.log = log }
}

func WithCycleObserver(fn func(CycleReport)) SolveOption {
	return func(o *solveOptions) { o.onCycle = fn }
}

// Solve validates env, trains a fresh table on it and extracts the greedy path.
// When the rollout hits its step cap the partial result is returned together
// with ErrNoConvergence; every other error returns a nil result.
func Solve(env *Environment, cfg Config, opts ...SolveOption) (*Result, error) {
	o := solveOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	table, err := NewQTable(env)
	if err != nil {
		return nil, err
	}
	o.log.WithField("entries", table.Len()).Debug("q-table initialised")

	trainer := NewTrainer(env, table, cfg, o.log)
	trainer.OnCycle(o.onCycle)
	if err := trainer.Train(); err != nil {
		return nil, err
	}

	path, err := ExtractPath(table, env, trainer.Config().MaxSteps)
	if err != nil && !errors.Is(err, ErrNoConvergence) {
		return nil, err
	}
	result := &Result{
		Path:    path,
		Table:   table,
		Reports: trainer.Reports(),
		Config:  trainer.Config(),
		Reached: path.End(env.Start),
	}
	return result, err
}
