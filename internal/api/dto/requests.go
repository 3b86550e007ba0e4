package dto

// ItemRequest is one order or charge in a match request.
// Amount is a decimal string with at most two places, e.g. "10.99".
type ItemRequest struct {
	Label  string `json:"label"`
	Amount string `json:"amount" binding:"required"`
}

// MatchRequest is the body of POST /api/match.
type MatchRequest struct {
	Orders       []ItemRequest `json:"orders" binding:"dive"`
	Charges      []ItemRequest `json:"charges" binding:"dive"`
	MaxSolutions int           `json:"max_solutions" binding:"gte=0"`
}

// RunListParams represents query parameters for listing runs.
type RunListParams struct {
	Limit int `form:"limit"`
}

// DefaultRunListParams returns default values for run list params.
func DefaultRunListParams() RunListParams {
	return RunListParams{
		Limit: 20,
	}
}
