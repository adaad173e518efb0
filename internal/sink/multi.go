package sink

import (
	"context"

	domain "github.com/aq2208/order-tally/internal/entity"
)

// Multi fans a report out to every configured sink in registration order.
// The first error stops the fan-out and is returned to the caller.
type Multi struct {
	sinks []domain.ReportSink
}

func NewMulti(sinks ...domain.ReportSink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Report(ctx context.Context, rep domain.Report) error {
	for _, s := range m.sinks {
		if err := s.Report(ctx, rep); err != nil {
			return err
		}
	}
	return nil
}

var _ domain.ReportSink = (*Multi)(nil)
