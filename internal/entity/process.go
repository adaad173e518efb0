package domain

import (
	"context"
	"fmt"
)

// Report is what a consumed Order turns into: the single human-readable line
// identifying the order, plus the raw fields for sinks that publish
// structured payloads.
type Report struct {
	OrderID uint64
	Total   float64
	Line    string
}

// ReportSink is the injected output channel for processed orders. The
// surrounding application decides the physical channel (stdout, a broker,
// a fan-out over several).
type ReportSink interface {
	Report(ctx context.Context, rep Report) error
}

// Process consumes an Order. The Order is taken by value: ownership passes
// to Process and the caller's binding must not be used afterwards. Exactly
// one report line identifying the order by id is emitted to the sink; the
// sink's error is returned to the caller unchanged.
func Process(ctx context.Context, order Order, sink ReportSink) error {
	return sink.Report(ctx, Report{
		OrderID: order.ID,
		Total:   order.Total,
		Line:    fmt.Sprintf("processing order %d", order.ID),
	})
}
