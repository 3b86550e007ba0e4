package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/chargematch/internal/api/dto"
	"github.com/eshaffer321/chargematch/internal/domain/money"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

// RunsHandler handles match run history requests.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/runs - returns recent runs, newest first.
func (h *RunsHandler) List(c *gin.Context) {
	limit := ParseIntParam(c, "limit", dto.DefaultRunListParams().Limit)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.MatchRunResponse, 0, len(runs)),
		Count: len(runs),
	}

	for _, run := range runs {
		response.Runs = append(response.Runs, toMatchRunResponse(run))
	}

	h.WriteJSON(c, http.StatusOK, response)
}

// Get handles GET /api/runs/:id - returns a single run by its run ID.
func (h *RunsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("run ID is required"))
		return
	}

	run, err := h.repo.GetRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		h.WriteError(c, http.StatusNotFound, dto.NotFoundError("run"))
		return
	}
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(c, http.StatusOK, toMatchRunResponse(*run))
}

// toMatchRunResponse converts a storage MatchRun to an API response.
func toMatchRunResponse(run storage.MatchRun) dto.MatchRunResponse {
	response := dto.MatchRunResponse{
		RunID:         run.RunID,
		Source:        run.Source,
		Status:        run.Status,
		StartedAt:     run.StartedAt.UTC().Format(time.RFC3339),
		DurationMs:    run.DurationMs,
		OrderCount:    run.OrderCount,
		ChargeCount:   run.ChargeCount,
		OrderTotal:    money.Cents(run.OrderTotal).String(),
		ChargeTotal:   money.Cents(run.ChargeTotal).String(),
		MaxSolutions:  run.MaxSolutions,
		SolutionCount: run.SolutionCount,
		Explored:      run.Explored,
		Truncated:     run.Truncated,
		ErrorMessage:  run.ErrorMessage,
	}
	if run.CompletedAt != nil {
		response.CompletedAt = run.CompletedAt.UTC().Format(time.RFC3339)
	}
	return response
}
