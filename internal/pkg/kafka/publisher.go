package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes payroll events to a single topic, keyed by employee id
// so every event of one employee lands on the same partition.
type Publisher struct {
	writer messageWriter
}

var _ payroll.EventPublisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (p *Publisher) PublishSnapshotCommitted(ctx context.Context, event payroll.SnapshotCommittedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.EmployeeID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte("payroll_snapshot")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event.EventType, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

var _ payroll.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishSnapshotCommitted(context.Context, payroll.SnapshotCommittedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
