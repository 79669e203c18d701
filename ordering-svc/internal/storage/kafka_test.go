package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher_PublishOrderEvent(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	order := testOrder("ORD-1", "rest002", at)
	order.InternalID = "665f1c2e9b1d8a0001a1b2c3"
	event := domain.NewOrderEvent(domain.EventOrderCreated, order, at)

	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))
	require.Len(t, writer.messages, 1)
	assert.Equal(t, []byte("rest002"), writer.messages[0].Key)

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, domain.EventOrderCreated, decoded.Type)
	assert.Equal(t, "665f1c2e9b1d8a0001a1b2c3", decoded.OrderID)
	assert.Equal(t, "ORD-1", decoded.OrderNumber)
	assert.Equal(t, 8.63, decoded.Total)
	assert.True(t, at.Equal(decoded.Timestamp))
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: kafka.LeaderNotAvailable})

	err := publisher.PublishOrderEvent(context.Background(), domain.OrderEvent{Type: domain.EventOrderCompleted})
	assert.ErrorIs(t, err, kafka.LeaderNotAvailable)
}
