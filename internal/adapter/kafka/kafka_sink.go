package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	domain "github.com/aq2208/order-tally/internal/entity"
)

// NewSyncProducer builds a sarama producer tuned for report publishing:
// full-ISR acks, a few retries, success channel on (required by SyncProducer).
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Net.DialTimeout = 5 * time.Second
	return sarama.NewSyncProducer(brokers, cfg)
}

type reportMsg struct {
	OrderID uint64  `json:"orderId"`
	Total   float64 `json:"total"`
	Report  string  `json:"report"`
}

// Sink publishes processed-order reports to a Kafka topic, keyed by order id
// so reports for one order land on one partition.
type Sink struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSink(producer sarama.SyncProducer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

func (s *Sink) Report(ctx context.Context, rep domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(reportMsg{
		OrderID: rep.OrderID,
		Total:   rep.Total,
		Report:  rep.Line,
	})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(rep.OrderID, 10)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

var _ domain.ReportSink = (*Sink)(nil)
