package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/chargematch/internal/api/dto"
	"github.com/eshaffer321/chargematch/internal/api/handlers"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

func TestRunsHandler_List(t *testing.T) {
	t.Run("returns empty list when no runs", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewRunsHandler(repo)

		rec := serve(t, http.MethodGet, "/api/runs", handler.List, "/api/runs", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		response := decode[dto.RunListResponse](t, rec)
		assert.Empty(t, response.Runs)
		assert.Equal(t, 0, response.Count)
	})

	t.Run("returns runs from repository", func(t *testing.T) {
		repo := storage.NewMockRepository()
		require.NoError(t, repo.StartRun(&storage.MatchRun{RunID: "r1", Source: "cli", ChargeCount: 3}))
		require.NoError(t, repo.CompleteRun("r1", storage.RunOutcome{SolutionCount: 2}))
		require.NoError(t, repo.StartRun(&storage.MatchRun{RunID: "r2", Source: "api"}))

		handler := handlers.NewRunsHandler(repo)
		rec := serve(t, http.MethodGet, "/api/runs", handler.List, "/api/runs", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		response := decode[dto.RunListResponse](t, rec)
		assert.Equal(t, 2, response.Count)
		assert.Len(t, response.Runs, 2)
	})

	t.Run("respects limit parameter", func(t *testing.T) {
		repo := storage.NewMockRepository()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			repo.AddRun(&storage.MatchRun{
				RunID:     fmt.Sprintf("run-%d", i),
				Status:    storage.StatusCompleted,
				StartedAt: base.Add(time.Duration(i) * time.Hour),
			})
		}

		handler := handlers.NewRunsHandler(repo)
		rec := serve(t, http.MethodGet, "/api/runs", handler.List, "/api/runs?limit=3", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		response := decode[dto.RunListResponse](t, rec)
		require.Len(t, response.Runs, 3)
		assert.Equal(t, "run-4", response.Runs[0].RunID)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.ListRunsErr = errors.New("database is locked")
		handler := handlers.NewRunsHandler(repo)

		rec := serve(t, http.MethodGet, "/api/runs", handler.List, "/api/runs", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, dto.ErrCodeInternalError, decode[dto.APIError](t, rec).Code)
	})
}

func TestRunsHandler_Get(t *testing.T) {
	t.Run("returns run by ID", func(t *testing.T) {
		repo := storage.NewMockRepository()
		require.NoError(t, repo.StartRun(&storage.MatchRun{
			RunID:       "abc",
			Source:      "api",
			OrderTotal:  500,
			ChargeTotal: 500,
		}))
		require.NoError(t, repo.CompleteRun("abc", storage.RunOutcome{SolutionCount: 4, Explored: 9}))

		handler := handlers.NewRunsHandler(repo)
		rec := serve(t, http.MethodGet, "/api/runs/:id", handler.Get, "/api/runs/abc", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		response := decode[dto.MatchRunResponse](t, rec)
		assert.Equal(t, "abc", response.RunID)
		assert.Equal(t, storage.StatusCompleted, response.Status)
		assert.Equal(t, "5.00", response.OrderTotal)
		assert.Equal(t, 4, response.SolutionCount)
		assert.NotEmpty(t, response.CompletedAt)
	})

	t.Run("returns 404 for unknown run", func(t *testing.T) {
		handler := handlers.NewRunsHandler(storage.NewMockRepository())

		rec := serve(t, http.MethodGet, "/api/runs/:id", handler.Get, "/api/runs/missing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decode[dto.APIError](t, rec).Code)
	})

	t.Run("returns 500 on repository error", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.GetRunErr = errors.New("disk I/O error")
		handler := handlers.NewRunsHandler(repo)

		rec := serve(t, http.MethodGet, "/api/runs/:id", handler.Get, "/api/runs/abc", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestStatsHandler_Get(t *testing.T) {
	repo := storage.NewMockRepository()
	require.NoError(t, repo.StartRun(&storage.MatchRun{RunID: "a", ChargeCount: 4}))
	require.NoError(t, repo.CompleteRun("a", storage.RunOutcome{SolutionCount: 2}))
	require.NoError(t, repo.StartRun(&storage.MatchRun{RunID: "b", ChargeCount: 2}))
	require.NoError(t, repo.FailRun("b", "boom"))

	handler := handlers.NewStatsHandler(repo)
	rec := serve(t, http.MethodGet, "/api/stats", handler.Get, "/api/stats", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decode[dto.StatsResponse](t, rec)
	assert.Equal(t, 2, response.TotalRuns)
	assert.Equal(t, 1, response.CompletedCount)
	assert.Equal(t, 1, response.FailedCount)
	assert.Equal(t, 2, response.TotalSolutions)
	assert.Equal(t, 6, response.TotalCharges)
	assert.NotEmpty(t, response.LastRunAt)
}

func TestStatsHandler_Error(t *testing.T) {
	repo := storage.NewMockRepository()
	repo.GetStatsErr = errors.New("boom")
	handler := handlers.NewStatsHandler(repo)

	rec := serve(t, http.MethodGet, "/api/stats", handler.Get, "/api/stats", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
