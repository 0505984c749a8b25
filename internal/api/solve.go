package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"qmaze/internal/engine"
)

const (
	// "0, " plus room for indentation and newlines
	bytesPerCell    = 8
	requestOverhead = 4096
)

// SolveController trains a fresh table per request.
type SolveController struct {
	defaults engine.Config
	maxCells int
	metrics  *Metrics
	log      logrus.FieldLogger
}

func NewSolveController(defaults engine.Config, maxCells int, metrics *Metrics, log logrus.FieldLogger) (*SolveController, error) {
	if maxCells <= 0 {
		return nil, fmt.Errorf("max grid cells must be positive (got %d)", maxCells)
	}
	if metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SolveController{
		defaults: defaults,
		maxCells: maxCells,
		metrics:  metrics,
		log:      log,
	}, nil
}

// Register mounts POST /solve.
func (sc *SolveController) Register(route *gin.RouterGroup) {
	route.POST("/solve", sc.solve)
}

func (sc *SolveController) solve(ctx *gin.Context) {
	id := uuid.New()
	start := time.Now()
	log := sc.log.WithField("request_id", id)

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, sc.bodyLimit())
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		sc.reject(ctx, id, status, err)
		return
	}
	if cells := gridCells(request.Maze); cells > sc.maxCells {
		sc.reject(ctx, id, http.StatusRequestEntityTooLarge,
			fmt.Errorf("maze has %d cells, limit is %d", cells, sc.maxCells))
		return
	}
	env, err := engine.NewEnvironment(request.Maze, *request.Startpoint, *request.Endpoint)
	if err != nil {
		sc.reject(ctx, id, http.StatusBadRequest, err)
		return
	}

	cfg := sc.config(request)
	result, err := engine.Solve(env, cfg, engine.WithLogger(log))
	elapsed := time.Since(start)
	switch {
	case errors.Is(err, engine.ErrNoConvergence):
		sc.metrics.observe(outcomeNoPath, elapsed, len(result.Reports))
		log.WithError(err).Warn("solve did not converge")
		ctx.JSON(http.StatusUnprocessableEntity, errorResponse{ID: id, Error: err.Error()})
		return
	case errors.Is(err, engine.ErrMissingEntry):
		sc.reject(ctx, id, http.StatusBadRequest, err)
		return
	case err != nil:
		sc.metrics.observe(outcomeFailed, elapsed, 0)
		log.WithError(err).Error("solve failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse{ID: id, Error: "error while solving maze"})
		return
	}

	sc.metrics.observe(outcomeSolved, elapsed, len(result.Reports))
	log.WithFields(logrus.Fields{
		"steps":    len(result.Path),
		"duration": elapsed,
	}).Info("maze solved")

	path := make([]string, len(result.Path))
	for i, a := range result.Path {
		path[i] = a.String()
	}
	ctx.JSON(http.StatusOK, SolveResponse{
		ID:      id,
		Path:    path,
		Symbols: result.Path.String(),
		Steps:   len(result.Path),
		Reached: result.Reached,
		Cycles:  result.Config.Cycles,
	})
}

func (sc *SolveController) config(request SolveRequest) engine.Config {
	cfg := sc.defaults
	if request.Cycles > 0 {
		cfg.Cycles = request.Cycles
	}
	if request.LearningRate > 0 {
		cfg.LearningRate = request.LearningRate
	}
	if request.DiscountFactor != nil {
		cfg.DiscountFactor = *request.DiscountFactor
	}
	if request.MaxSteps > 0 {
		cfg.MaxSteps = request.MaxSteps
	}
	// per-update debug lines are for the CLI
	cfg.Verbose = false
	return cfg
}

func (sc *SolveController) reject(ctx *gin.Context, id uuid.UUID, status int, err error) {
	sc.metrics.observe(outcomeRejected, 0, 0)
	sc.log.WithField("request_id", id).WithError(err).Info("solve request rejected")
	ctx.JSON(status, errorResponse{ID: id, Error: err.Error()})
}

// bodyLimit caps the request body in proportion to maxCells.
func (sc *SolveController) bodyLimit() int64 {
	return int64(sc.maxCells)*bytesPerCell + requestOverhead
}

func gridCells(maze [][]int) int {
	cells := 0
	for _, row := range maze {
		cells += len(row)
	}
	return cells
}
