// Package config loads process settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"qmaze/internal/engine"
)

// Config holds the application's configuration values.
type Config struct {
	MazeFile       string  // Maze definition read by the solve command
	LearningRate   float64 // Weight of the new estimate in each update
	DiscountFactor float64 // Weight of the next state's value
	Cycles         int     // Number of training sweeps
	Verbose        bool    // Log every update and cycle
	MaxSteps       int     // Cap on the greedy rollout, 0 derives one from the maze size
	HTTPAddr       string  // Listen address for the serve command
	MaxGridCells   int     // Largest maze the HTTP API accepts
	LogLevel       string  // logrus level name
	GinMode        string  // Mode for the Gin framework (release, debug, test)
}

const defaultEnvFile = ".env"

// Load reads the given .env files (".env" when none are given) and overlays
// the process environment. A missing default .env is not an error. Process
// variables win over file values, and nothing is written back to the
// environment.
func Load(files ...string) (Config, error) {
	explicit := len(files) > 0
	if !explicit {
		files = []string{defaultEnvFile}
	}
	values, err := godotenv.Read(files...)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
		values = map[string]string{}
	}
	return fromSource(source(values))
}

func fromSource(src source) (Config, error) {
	var (
		cfg  Config
		errs []error
	)
	cfg.MazeFile = src.getWithDefault("QMAZE_MAZE_FILE", "./maze.ron")
	cfg.LearningRate = src.getFloat("QMAZE_LEARNING_RATE", engine.DefaultLearningRate, &errs)
	cfg.DiscountFactor = src.getFloat("QMAZE_DISCOUNT_FACTOR", engine.DefaultDiscountFactor, &errs)
	cfg.Cycles = src.getInt("QMAZE_CYCLES", engine.DefaultCycles, &errs)
	cfg.Verbose = src.getBool("QMAZE_VERBOSE", false, &errs)
	cfg.MaxSteps = src.getInt("QMAZE_MAX_STEPS", 0, &errs)
	cfg.HTTPAddr = src.getWithDefault("QMAZE_HTTP_ADDR", ":8080")
	cfg.MaxGridCells = src.getInt("QMAZE_MAX_GRID_CELLS", 10000, &errs)
	cfg.LogLevel = src.getWithDefault("QMAZE_LOG_LEVEL", "info")
	cfg.GinMode = src.getWithDefault("GIN_MODE", "release")

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("QMAZE_LOG_LEVEL: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Engine returns the trainer settings.
func (c Config) Engine() engine.Config {
	return engine.Config{
		LearningRate:   c.LearningRate,
		DiscountFactor: c.DiscountFactor,
		Cycles:         c.Cycles,
		Verbose:        c.Verbose,
		MaxSteps:       c.MaxSteps,
	}
}

// Level is the configured log level, raised to debug in verbose mode.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.Verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	return level
}

// source resolves keys from the process environment, then from .env values.
type source map[string]string

func (s source) lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := s[key]
	return value, ok
}

// getWithDefault retrieves the value of a variable or returns a default value if not set.
func (s source) getWithDefault(key, defaultValue string) string {
	if value, ok := s.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int, errs *[]error) int {
	value, ok := s.lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer: %w", key, err))
		return defaultValue
	}
	return n
}

func (s source) getFloat(key string, defaultValue float64, errs *[]error) float64 {
	value, ok := s.lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a number: %w", key, err))
		return defaultValue
	}
	return f
}

func (s source) getBool(key string, defaultValue bool, errs *[]error) bool {
	value, ok := s.lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean: %w", key, err))
		return defaultValue
	}
	return b
}
