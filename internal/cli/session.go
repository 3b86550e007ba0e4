package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/eshaffer321/chargematch/internal/adapters/textio"
	"github.com/eshaffer321/chargematch/internal/application/reconcile"
)

// Session is one interactive reconciliation: read orders, read charges,
// print every exact allocation.
type Session struct {
	In      io.Reader
	Out     io.Writer
	Summary io.Writer // optional run summary, nil to skip
	Service *reconcile.Service
}

// Run reads both sections from In and writes the solutions to Out.
// Malformed input is returned as an error before anything is matched.
func (s *Session) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.In)

	fmt.Fprintln(s.Out, OrdersPrompt)
	orders, err := textio.ReadOrders(sc)
	if err != nil {
		return fmt.Errorf("orders: %w", err)
	}
	fmt.Fprintln(s.Out)

	fmt.Fprintln(s.Out, ChargesPrompt)
	charges, err := textio.ReadCharges(sc)
	if err != nil {
		return fmt.Errorf("charges: %w", err)
	}
	fmt.Fprintln(s.Out)

	result, err := s.Service.Reconcile(ctx, reconcile.Request{
		Orders:  orders,
		Charges: charges,
		Source:  "cli",
	})
	if err != nil {
		return err
	}

	if err := textio.WriteSolutions(s.Out, result.Solutions); err != nil {
		return err
	}

	if s.Summary != nil {
		PrintRunSummary(s.Summary, result)
	}
	return nil
}
