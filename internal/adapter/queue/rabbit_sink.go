package queue

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/aq2208/order-tally/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultExchange   = "order.events"
	defaultRoutingKey = "order.processed"
	defaultQueue      = "order.processed.q"
)

// reportMsg is the wire shape of a processed-order report on the bus.
type reportMsg struct {
	OrderID uint64  `json:"orderId"`
	Total   float64 `json:"total"`
	Report  string  `json:"report"`
}

// Channel is the slice of amqp.Channel the sink needs. *amqp.Channel
// satisfies it; tests substitute a fake.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Confirm(noWait bool) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitSink publishes each processed-order report to a durable topic
// exchange. It implements domain.ReportSink.
type RabbitSink struct {
	ch         Channel
	exchange   string
	routingKey string
}

type RabbitOption func(*RabbitSink)

func WithExchange(name string) RabbitOption {
	return func(s *RabbitSink) { s.exchange = name }
}

func WithRoutingKey(key string) RabbitOption {
	return func(s *RabbitSink) { s.routingKey = key }
}

// NewRabbitSink declares the exchange, queue and binding once at startup and
// enables publisher confirms.
func NewRabbitSink(ch Channel, opts ...RabbitOption) (*RabbitSink, error) {
	s := &RabbitSink{
		ch:         ch,
		exchange:   defaultExchange,
		routingKey: defaultRoutingKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := ch.ExchangeDeclare(
		s.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		defaultQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, s.routingKey, s.exchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return s, nil
}

// Report sends one "order.processed" message per consumed order.
func (s *RabbitSink) Report(ctx context.Context, rep domain.Report) error {
	body, err := json.Marshal(reportMsg{
		OrderID: rep.OrderID,
		Total:   rep.Total,
		Report:  rep.Line,
	})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := s.ch.PublishWithContext(
		ctx,
		s.exchange,
		s.routingKey,
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

var _ domain.ReportSink = (*RabbitSink)(nil)
