package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() payroll.SnapshotCommittedEvent {
	return payroll.NewSnapshotCommittedEvent(payroll.Snapshot{
		ID:          "snap-1",
		EmployeeID:  "emp-1",
		Month:       3,
		Year:        2024,
		GrossIncome: decimal.RequireFromString("9730769.23"),
		NetSalary:   decimal.RequireFromString("8680769.23"),
		CreatedAt:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestPublisher_PublishSnapshotCommitted(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	require.NoError(t, p.PublishSnapshotCommitted(context.Background(), sampleEvent()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "emp-1", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, payroll.EventTypeSnapshotCommitted, string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "snap-1", body["snapshot_id"])
	assert.Equal(t, "8680769.23", body["net_salary"])
	assert.EqualValues(t, 3, body["month"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	brokerErr := errors.New("leader not available")
	p := &Publisher{writer: &fakeWriter{err: brokerErr}}

	err := p.PublishSnapshotCommitted(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, brokerErr)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishSnapshotCommitted(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
