package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"qmaze/internal/config"
	"qmaze/internal/engine"
	"qmaze/internal/mazefile"
	"qmaze/internal/render"
)

type solveOptions struct {
	maze    string
	engine  engine.Config
	noColor bool
	chart   string
	values  bool
}

func newSolveCommand(cfg config.Config, stderr io.Writer) *cobra.Command {
	opts := solveOptions{engine: cfg.Engine()}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Train on a maze file and print the greedy path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.engine.Cycles <= 0 {
				return fmt.Errorf("cycles must be positive (got %d)", opts.engine.Cycles)
			}
			if opts.engine.LearningRate <= 0 || opts.engine.LearningRate > 1 {
				return fmt.Errorf("learning rate must be in (0, 1] (got %.2f)", opts.engine.LearningRate)
			}
			if opts.engine.DiscountFactor < 0 || opts.engine.DiscountFactor > 1 {
				return fmt.Errorf("discount must be in [0, 1] (got %.2f)", opts.engine.DiscountFactor)
			}
			cfg.Verbose = opts.engine.Verbose
			return runSolve(cmd.OutOrStdout(), newLogger(stderr, cfg.Level()), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.maze, "maze", cfg.MazeFile, "maze definition (.ron, .yaml or .json)")
	flags.IntVar(&opts.engine.Cycles, "cycles", opts.engine.Cycles, "number of training sweeps")
	flags.Float64Var(&opts.engine.LearningRate, "learning-rate", opts.engine.LearningRate, "learning rate (0-1]")
	flags.Float64Var(&opts.engine.DiscountFactor, "discount", opts.engine.DiscountFactor, "discount factor [0-1]")
	flags.IntVar(&opts.engine.MaxSteps, "max-steps", opts.engine.MaxSteps, "cap on the greedy rollout (0 for 4*width*height)")
	flags.BoolVarP(&opts.engine.Verbose, "verbose", "v", opts.engine.Verbose, "log every update and cycle")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable ANSI colours")
	flags.StringVar(&opts.chart, "chart", "", "write an HTML convergence chart to this file")
	flags.BoolVar(&opts.values, "values", false, "print the learned value of every cell")
	return cmd
}

func runSolve(out io.Writer, log logrus.FieldLogger, opts solveOptions) error {
	env, err := mazefile.Load(opts.maze)
	if err != nil {
		return err
	}
	printer := render.NewPrinter(out, !opts.noColor)
	printer.Environment(env)

	result, err := engine.Solve(env, opts.engine, engine.WithLogger(log))
	if err != nil && !errors.Is(err, engine.ErrNoConvergence) {
		return err
	}

	fmt.Fprintln(out)
	printer.Path(result.Path)
	fmt.Fprintln(out)
	printer.Environment(env)
	fmt.Fprintln(out)
	printer.Maze(env, result.Path)
	if opts.values {
		fmt.Fprintln(out)
		printer.Values(result.Table)
	}
	if opts.chart != "" {
		if chartErr := writeChart(opts.chart, result.Reports); chartErr != nil {
			return chartErr
		}
	}
	return err
}

func writeChart(path string, reports []engine.CycleReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := render.ConvergenceChart(f, reports); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
