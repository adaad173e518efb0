package usecase

import (
	"context"
	"errors"

	domain "github.com/aq2208/order-tally/internal/entity"
	"github.com/aq2208/order-tally/internal/logging"
)

var ErrAlreadyProcessed = errors.New("order already processed")

type ProcessOrderInput struct {
	OrderID uint64
	Prices  []float64
}

type ProcessOrderOutput struct {
	OrderID uint64
	Total   float64
	Report  string
}

type ProcessOrder struct {
	guard ConsumptionGuard
	sink  domain.ReportSink
}

func NewProcessOrder(guard ConsumptionGuard, sink domain.ReportSink) *ProcessOrder {
	return &ProcessOrder{guard: guard, sink: sink}
}

// Execute builds the order, applies the prices in call order and hands the
// order to the terminal processing step. The guard rejects a second process
// request for an id that was already consumed.
func (uc *ProcessOrder) Execute(ctx context.Context, in ProcessOrderInput) (ProcessOrderOutput, error) {
	ok, err := uc.guard.TryConsume(ctx, in.OrderID)
	if err != nil {
		return ProcessOrderOutput{}, err
	}
	if !ok {
		return ProcessOrderOutput{}, ErrAlreadyProcessed
	}

	order := domain.NewOrder(in.OrderID)
	for _, p := range in.Prices {
		order.AddItem(p)
	}
	total := order.Total

	rec := &recordingSink{next: uc.sink}
	if err := domain.Process(ctx, order, rec); err != nil {
		// Release the id so a retry after a channel outage can get through.
		if ferr := uc.guard.Forget(ctx, in.OrderID); ferr != nil {
			logging.FromCtx(ctx).Warn("guard release failed, order id stays consumed",
				"order_id", in.OrderID, "err", ferr.Error())
		}
		return ProcessOrderOutput{}, err
	}

	return ProcessOrderOutput{OrderID: in.OrderID, Total: total, Report: rec.last.Line}, nil
}

// recordingSink keeps the last report so the caller gets the emitted line
// back without the use case re-deriving it.
type recordingSink struct {
	next domain.ReportSink
	last domain.Report
}

func (s *recordingSink) Report(ctx context.Context, rep domain.Report) error {
	if err := s.next.Report(ctx, rep); err != nil {
		return err
	}
	s.last = rep
	return nil
}
