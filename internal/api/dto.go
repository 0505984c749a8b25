package api

import (
	"github.com/google/uuid"

	"qmaze/internal/engine"
)

// SolveRequest carries a maze definition and optional trainer overrides.
type SolveRequest struct {
	Maze           [][]int          `json:"maze" binding:"required"`
	Startpoint     *engine.Position `json:"startpoint" binding:"required"`
	Endpoint       *engine.Position `json:"endpoint" binding:"required"`
	Cycles         int              `json:"cycles" binding:"omitempty,min=1,max=10000"`
	LearningRate   float64          `json:"learning_rate" binding:"omitempty,gt=0,lte=1"`
	DiscountFactor *float64         `json:"discount_factor" binding:"omitempty,gte=0,lte=1"`
	MaxSteps       int              `json:"max_steps" binding:"omitempty,min=1"`
}

// SolveResponse describes the learned path.
type SolveResponse struct {
	ID      uuid.UUID       `json:"id"`
	Path    []string        `json:"path"`
	Symbols string          `json:"symbols"`
	Steps   int             `json:"steps"`
	Reached engine.Position `json:"reached"`
	Cycles  int             `json:"cycles"`
}

type errorResponse struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}
