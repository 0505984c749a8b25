package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qmaze/internal/config"
	"qmaze/internal/engine"
)

const referenceMaze = `maze:
  - [2, 0, 0, 0, 0]
  - [0, 0, 0, 0, 0]
  - [0, 0, 0, 0, 0]
  - [0, 0, 0, 0, 0]
  - [0, 0, 0, 1, 0]
startpoint: {x: 3, y: 4}
endpoint: {x: 0, y: 0}
`

// walled splits the grid with a column of start markers, so the greedy walk
// bounces between the two right-hand cells.
const walledMaze = `{"maze": [[0, 1, 0], [0, 1, 0]], "startpoint": {"x": 2, "y": 0}, "endpoint": {"x": 0, "y": 0}}`

func writeMaze(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestSolvePrintsPath(t *testing.T) {
	maze := writeMaze(t, "maze.yaml", referenceMaze)

	out, _, err := execute(t, "solve", "--maze", maze, "--no-color", "--cycles", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "startpoint: (3,4)")
	assert.Contains(t, out, "endpoint: (0,0)")
	assert.Contains(t, out, "moves[↑, ")
	assert.Contains(t, out, " G |")
	assert.NotContains(t, out, "\x1b[")

	// the environment is printed before training and again after the path
	assert.Equal(t, 2, strings.Count(out, "startpoint: (3,4)"))
	assert.Greater(t, strings.LastIndex(out, "startpoint: (3,4)"), strings.Index(out, "moves["))
}

func TestSolveAcceptsZeroDiscount(t *testing.T) {
	maze := writeMaze(t, "maze.yaml", referenceMaze)

	out, _, err := execute(t, "solve", "--maze", maze, "--no-color", "--discount", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "moves[↑, ")
}

func TestSolveValuesAndChart(t *testing.T) {
	maze := writeMaze(t, "maze.yaml", referenceMaze)
	chart := filepath.Join(t.TempDir(), "convergence.html")

	out, _, err := execute(t, "solve", "--maze", maze, "--no-color", "--values", "--chart", chart)
	require.NoError(t, err)
	assert.Regexp(t, `\d+\.\d{2} \|`, out)

	html, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(html), "q-table convergence")
}

func TestSolveVerboseLogsCycles(t *testing.T) {
	maze := writeMaze(t, "maze.yaml", referenceMaze)

	_, logs, err := execute(t, "solve", "--maze", maze, "--cycles", "3", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, logs, "training cycle 3 complete")
	assert.Contains(t, logs, "q value")
}

func TestSolveReportsNoConvergence(t *testing.T) {
	maze := writeMaze(t, "walled.json", walledMaze)

	out, _, err := execute(t, "solve", "--maze", maze, "--no-color", "--max-steps", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNoConvergence)
	assert.Contains(t, out, "moves[↓, ↑, ↓, ↑]")
}

func TestSolveRejectsBadInput(t *testing.T) {
	maze := writeMaze(t, "maze.yaml", referenceMaze)

	cases := map[string][]string{
		"missing file": {"solve", "--maze", filepath.Join(t.TempDir(), "nope.yaml")},
		"unknown ext":  {"solve", "--maze", "maze.txt"},
		"zero cycles":  {"solve", "--maze", maze, "--cycles", "0"},
		"bad rate":     {"solve", "--maze", maze, "--learning-rate", "1.5"},
		"bad discount": {"solve", "--maze", maze, "--discount=-0.1"},
		"extra args":   {"solve", "--maze", maze, "other"},
		"unknown verb": {"train"},
		"unknown flag": {"solve", "--epsilon", "0.1"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestServeRouter(t *testing.T) {
	cfg := config.Config{
		LearningRate:   engine.DefaultLearningRate,
		DiscountFactor: engine.DefaultDiscountFactor,
		Cycles:         10,
		MaxGridCells:   100,
		LogLevel:       "error",
		GinMode:        "test",
	}
	router, err := newRouter(cfg, ":0", &bytes.Buffer{})
	require.NoError(t, err)

	h := router.Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServeRejectsBadLimit(t *testing.T) {
	_, err := newRouter(config.Config{GinMode: "test", LogLevel: "info"}, ":0", &bytes.Buffer{})
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
