package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/eshaffer321/chargematch/internal/application/reconcile"
)

// Prompts shown by the interactive session
const (
	OrdersPrompt  = "Input orders [order name: 10.99]:"
	ChargesPrompt = "Input charges [charge date: 2.45]:"
)

// PrintRunSummary prints one line of run bookkeeping
func PrintRunSummary(w io.Writer, result *reconcile.Result) {
	fmt.Fprintf(w, "Run %s: %d solution(s), %d combinations explored in %s",
		result.RunID,
		len(result.Solutions),
		result.Explored,
		result.Duration.Round(time.Microsecond))
	if result.Truncated {
		fmt.Fprint(w, " (stopped at solution limit)")
	}
	fmt.Fprintln(w)

	if result.Balance != nil && !result.Balance.Balanced {
		fmt.Fprintf(w, "Totals differ: %s\n", result.Balance.Reason)
	}
}
