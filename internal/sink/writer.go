package sink

import (
	"context"
	"fmt"
	"io"

	domain "github.com/aq2208/order-tally/internal/entity"
)

// WriterSink writes each report line to an io.Writer, one line per report.
// With os.Stdout this is the classic console output channel.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Report(_ context.Context, rep domain.Report) error {
	if _, err := fmt.Fprintln(s.w, rep.Line); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

var _ domain.ReportSink = (*WriterSink)(nil)
