package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type captureSink struct {
	reports []Report
	err     error
}

func (s *captureSink) Report(_ context.Context, rep Report) error {
	if s.err != nil {
		return s.err
	}
	s.reports = append(s.reports, rep)
	return nil
}

func TestProcess(t *testing.T) {
	t.Parallel()

	t.Run("emits one line identifying the order", func(t *testing.T) {
		sink := &captureSink{}
		o := NewOrder(99)

		if err := Process(context.Background(), o, sink); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(sink.reports) != 1 {
			t.Fatalf("expected exactly one report, got %d", len(sink.reports))
		}
		rep := sink.reports[0]
		if rep.OrderID != 99 {
			t.Fatalf("expected order id 99, got %d", rep.OrderID)
		}
		if !strings.Contains(rep.Line, "99") {
			t.Fatalf("expected report line to contain the id, got %q", rep.Line)
		}
		if strings.Contains(rep.Line, "\n") {
			t.Fatalf("expected a single line, got %q", rep.Line)
		}
	})

	t.Run("carries the accumulated total into the report", func(t *testing.T) {
		sink := &captureSink{}
		o := NewOrder(7)
		o.AddItem(3.50)
		o.AddItem(1.25)

		if err := Process(context.Background(), o, sink); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := sink.reports[0].Total; got != 4.75 {
			t.Fatalf("expected total 4.75 in report, got %v", got)
		}
	})

	t.Run("does not mutate the caller's copy before transfer", func(t *testing.T) {
		sink := &captureSink{}
		o := NewOrder(12)
		o.AddItem(8.00)

		if err := Process(context.Background(), o, sink); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// Value semantics: the caller's binding is dead by convention after
		// Process, but the bytes it held must be untouched.
		if o.ID != 12 || o.Total != 8.00 {
			t.Fatalf("caller's copy mutated: %+v", o)
		}
	})

	t.Run("sink error is returned to the caller", func(t *testing.T) {
		sinkErr := errors.New("channel down")
		sink := &captureSink{err: sinkErr}

		err := Process(context.Background(), NewOrder(1), sink)
		if !errors.Is(err, sinkErr) {
			t.Fatalf("expected sink error, got %v", err)
		}
	})
}
