package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/chargematch/internal/api/dto"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

// StatsHandler handles statistics requests.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{
		Base: NewBase(repo),
	}
}

// Get handles GET /api/stats - returns aggregate run statistics.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.StatsResponse{
		TotalRuns:       stats.TotalRuns,
		CompletedCount:  stats.CompletedCount,
		NoSolutionCount: stats.NoSolutionCount,
		FailedCount:     stats.FailedCount,
		TotalSolutions:  stats.TotalSolutions,
		TotalCharges:    stats.TotalCharges,
		AverageMs:       stats.AverageMs,
	}
	if stats.LastRunAt != nil {
		response.LastRunAt = stats.LastRunAt.UTC().Format(time.RFC3339)
	}

	h.WriteJSON(c, http.StatusOK, response)
}
