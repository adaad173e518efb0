package sink

import (
	"bytes"
	"context"
	"errors"
	"testing"

	domain "github.com/aq2208/order-tally/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	lines []string
	err   error
}

func (s *stubSink) Report(_ context.Context, rep domain.Report) error {
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, rep.Line)
	return nil
}

func TestWriterSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	err := s.Report(context.Background(), domain.Report{OrderID: 42, Line: "processing order 42"})
	require.NoError(t, err)
	assert.Equal(t, "processing order 42\n", buf.String())
}

func TestWriterSink_IsTheProcessChannel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	o := domain.NewOrder(99)

	require.NoError(t, domain.Process(context.Background(), o, NewWriterSink(&buf)))
	assert.Contains(t, buf.String(), "99")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestMulti(t *testing.T) {
	t.Parallel()

	t.Run("fans out to every sink", func(t *testing.T) {
		a, b := &stubSink{}, &stubSink{}
		m := NewMulti(a, b)

		err := m.Report(context.Background(), domain.Report{OrderID: 1, Line: "processing order 1"})
		require.NoError(t, err)
		assert.Len(t, a.lines, 1)
		assert.Len(t, b.lines, 1)
	})

	t.Run("first error stops the fan-out", func(t *testing.T) {
		boom := errors.New("boom")
		a := &stubSink{err: boom}
		b := &stubSink{}
		m := NewMulti(a, b)

		err := m.Report(context.Background(), domain.Report{OrderID: 1, Line: "processing order 1"})
		require.ErrorIs(t, err, boom)
		assert.Empty(t, b.lines)
	})

	t.Run("empty multi accepts reports", func(t *testing.T) {
		require.NoError(t, NewMulti().Report(context.Background(), domain.Report{}))
	})
}
