package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	domain "github.com/aq2208/order-tally/internal/entity"
	"github.com/stretchr/testify/require"
)

func mockProducer(t *testing.T) *mocks.SyncProducer {
	t.Helper()
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	return mocks.NewSyncProducer(t, cfg)
}

func TestSink_Report(t *testing.T) {
	t.Run("publishes the report payload", func(t *testing.T) {
		producer := mockProducer(t)
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var msg struct {
				OrderID uint64  `json:"orderId"`
				Total   float64 `json:"total"`
				Report  string  `json:"report"`
			}
			if err := json.Unmarshal(val, &msg); err != nil {
				return err
			}
			if msg.OrderID != 42 || msg.Total != 4.75 {
				return fmt.Errorf("unexpected payload: %+v", msg)
			}
			if msg.Report != "processing order 42" {
				return fmt.Errorf("unexpected report line: %q", msg.Report)
			}
			return nil
		})

		s := NewSink(producer, "order.reports")
		err := s.Report(context.Background(), domain.Report{
			OrderID: 42,
			Total:   4.75,
			Line:    "processing order 42",
		})
		require.NoError(t, err)
		require.NoError(t, producer.Close())
	})

	t.Run("broker error surfaces", func(t *testing.T) {
		producer := mockProducer(t)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		s := NewSink(producer, "order.reports")
		err := s.Report(context.Background(), domain.Report{OrderID: 1, Line: "processing order 1"})
		require.Error(t, err)
		require.NoError(t, producer.Close())
	})

	t.Run("cancelled context stops the publish", func(t *testing.T) {
		producer := mockProducer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := NewSink(producer, "order.reports")
		err := s.Report(ctx, domain.Report{OrderID: 1, Line: "processing order 1"})
		require.True(t, errors.Is(err, context.Canceled))
		require.NoError(t, producer.Close())
	})
}
