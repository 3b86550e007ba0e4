package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/chargematch/internal/api/dto"
	"github.com/eshaffer321/chargematch/internal/application/reconcile"
	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/domain/money"
)

// MatchHandler runs reconciliations submitted over HTTP.
type MatchHandler struct {
	*Base
	service *reconcile.Service
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(service *reconcile.Service) *MatchHandler {
	return &MatchHandler{
		Base:    NewBase(nil),
		service: service,
	}
}

// Match handles POST /api/match - returns every exact allocation.
func (h *MatchHandler) Match(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	orders, err := parseItems(req.Orders, "orders", func(label string, v money.Cents) matcher.Order {
		return matcher.Order{Label: label, Value: v}
	})
	if err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	charges, err := parseItems(req.Charges, "charges", func(label string, v money.Cents) matcher.Charge {
		return matcher.Charge{Label: label, Value: v}
	})
	if err != nil {
		h.WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	result, err := h.service.Reconcile(c.Request.Context(), reconcile.Request{
		Orders:       orders,
		Charges:      charges,
		Source:       "api",
		MaxSolutions: req.MaxSolutions,
	})
	switch {
	case errors.Is(err, matcher.ErrTooManyCharges):
		h.WriteError(c, http.StatusUnprocessableEntity, dto.TooManyChargesError(err.Error()))
		return
	case err != nil:
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(c, http.StatusOK, toMatchResponse(result))
}

func parseItems[T any](items []dto.ItemRequest, field string, build func(string, money.Cents) T) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := money.Parse(item.Amount)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, build(item.Label, v))
	}
	return out, nil
}

func toItemResponse(label string, v money.Cents) dto.ItemResponse {
	return dto.ItemResponse{Label: label, Amount: v.String(), Cents: uint64(v)}
}

// toMatchResponse converts a reconcile result to an API response.
func toMatchResponse(result *reconcile.Result) dto.MatchResponse {
	response := dto.MatchResponse{
		RunID:           result.RunID,
		SolutionCount:   len(result.Solutions),
		Truncated:       result.Truncated,
		CandidateCounts: result.CandidateCounts,
		DurationMs:      result.Duration.Milliseconds(),
		Solutions:       make([]dto.SolutionResponse, 0, len(result.Solutions)),
	}

	if b := result.Balance; b != nil {
		response.Balance = dto.BalanceResponse{
			Balanced:    b.Balanced,
			OrderTotal:  b.OrderTotal.String(),
			ChargeTotal: b.ChargeTotal.String(),
			Reason:      b.Reason,
		}
	}

	for _, solution := range result.Solutions {
		sr := dto.SolutionResponse{Assignments: make([]dto.AssignmentResponse, 0, len(solution))}
		for _, a := range solution {
			ar := dto.AssignmentResponse{
				Order:   toItemResponse(a.Order.Label, a.Order.Value),
				Charges: make([]dto.ItemResponse, 0, len(a.Charges)),
			}
			for _, ch := range a.Charges {
				ar.Charges = append(ar.Charges, toItemResponse(ch.Label, ch.Value))
			}
			sr.Assignments = append(sr.Assignments, ar)
		}
		response.Solutions = append(response.Solutions, sr)
	}

	return response
}
