// Package kafka publishes order status changes to a Kafka topic.
//
// Messages are keyed by order id so that every change of one order lands on
// the same partition and consumers observe them in order.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type StatusChangedMessage struct {
	OrderID    string    `json:"order_id"`
	StoreID    string    `json:"store_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StatusChangedPublisher struct {
	producer *Producer
	topic    string
}

func NewStatusChangedPublisher(producer *Producer, topic string) *StatusChangedPublisher {
	return &StatusChangedPublisher{producer: producer, topic: topic}
}

func (p *StatusChangedPublisher) PublishStatusChanged(ctx context.Context, events []order.StatusChangedEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(StatusChangedMessage{
			OrderID:    e.OrderID.String(),
			StoreID:    e.StoreID.String(),
			From:       e.From.String(),
			To:         e.To.String(),
			OccurredAt: e.OccurredAt,
		})
		if err != nil {
			return errors.Wrap(err, "encode status change")
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.topic,
			Key:   []byte(e.OrderID.String()),
			Value: value,
			Time:  e.OccurredAt,
		})
	}
	return p.producer.Publish(ctx, msgs...)
}
