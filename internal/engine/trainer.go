package engine

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	DefaultLearningRate   = 0.1
	DefaultDiscountFactor = 0.9
	DefaultCycles         = 100
)

type Config struct {
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`
	// DiscountFactor may be zero, which ignores next-state values entirely.
	DiscountFactor float64 `json:"discount_factor" yaml:"discount_factor"`
	Cycles         int     `json:"cycles" yaml:"cycles"`
	Verbose        bool    `json:"verbose" yaml:"verbose"`
	// MaxSteps caps the greedy rollout. Zero derives a cap from the maze size.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
}

func DefaultConfig() Config {
	return Config{
		LearningRate:   DefaultLearningRate,
		DiscountFactor: DefaultDiscountFactor,
		Cycles:         DefaultCycles,
	}
}

// CycleReport summarises one completed sweep.
type CycleReport struct {
	Cycle     int     `json:"cycle"`
	MaxDelta  float64 `json:"max_delta"`
	MeanValue float64 `json:"mean_value"`
}

type Trainer struct {
	cfg     Config
	env     *Environment
	table   *QTable
	log     logrus.FieldLogger
	onCycle func(CycleReport)
	reports []CycleReport
}

func NewTrainer(env *Environment, table *QTable, cfg Config, log logrus.FieldLogger) *Trainer {
	if cfg.LearningRate <= 0 || cfg.LearningRate > 1 {
		cfg.LearningRate = DefaultLearningRate
	}
	if cfg.DiscountFactor < 0 || cfg.DiscountFactor > 1 {
		cfg.DiscountFactor = DefaultDiscountFactor
	}
	if cfg.Cycles <= 0 {
		cfg.Cycles = DefaultCycles
	}
	if cfg.MaxSteps < 0 {
		cfg.MaxSteps = 0
	}
	if log == nil {
		log = discardLogger()
	}
	return &Trainer{
		cfg:   cfg,
		env:   env,
		table: table,
		log:   log,
	}
}

func (t *Trainer) Config() Config { return t.cfg }

// OnCycle registers fn to receive a report after every sweep.
func (t *Trainer) OnCycle(fn func(CycleReport)) {
	t.onCycle = fn
}

func (t *Trainer) Reports() []CycleReport {
	reports := make([]CycleReport, len(t.reports))
	copy(reports, t.reports)
	return reports
}

// Train runs the configured number of sweeps. Next-state values are always read
// from a copy of the table taken before the first sweep; that copy is never
// refreshed, so the order in which entries are updated cannot matter.
func (t *Trainer) Train() error {
	rewards, err := rewardGrid(t.env)
	if err != nil {
		return err
	}
	snapshot := t.table.Clone()
	for cycle := 1; cycle <= t.cfg.Cycles; cycle++ {
		report, err := t.sweep(snapshot, rewards, cycle)
		if err != nil {
			return err
		}
		t.reports = append(t.reports, report)
		entry := t.log.WithFields(logrus.Fields{
			"cycle":      cycle,
			"max_delta":  report.MaxDelta,
			"mean_value": report.MeanValue,
		})
		if t.cfg.Verbose {
			entry.Infof("training cycle %d complete", cycle)
		} else {
			entry.Debugf("training cycle %d complete", cycle)
		}
		if t.onCycle != nil {
			t.onCycle(report)
		}
	}
	return nil
}

func (t *Trainer) sweep(snapshot *QTable, rewards [][]float64, cycle int) (CycleReport, error) {
	report := CycleReport{Cycle: cycle}
	alpha, gamma := t.cfg.LearningRate, t.cfg.DiscountFactor
	var sum float64
	err := t.table.Each(func(s State, a Action, current float64) error {
		next := Apply(a, s)
		reward := rewards[next.Pos.Y][next.Pos.X]
		nextValue, _, err := snapshot.BestAction(next, t.env)
		if err != nil {
			return err
		}
		updated := (1-alpha)*current + alpha*(reward+gamma*nextValue)
		if err := t.table.Set(s, a, updated); err != nil {
			return err
		}
		if t.cfg.Verbose {
			t.log.WithFields(logrus.Fields{
				"state":  s.Pos,
				"action": a,
				"reward": reward,
			}).Debugf("q value %g", updated)
		}
		report.MaxDelta = math.Max(report.MaxDelta, math.Abs(updated-current))
		sum += updated
		return nil
	})
	if err != nil {
		return report, err
	}
	if n := t.table.Len(); n > 0 {
		report.MeanValue = sum / float64(n)
	}
	return report, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
