package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"meta_indexer/internal/domain"
)

// BatchHandler processes one dequeued batch. A returned error fails the whole
// batch and drives the requeue policy; per-record problems are the handler's
// own business and never surface here.
type BatchHandler interface {
	HandleBatch(ctx context.Context, msg *domain.BatchMessage) error
}

// Consume blocks reading batch messages until the context is cancelled.
// Acks on success; a first failure is requeued, a redelivered failure is
// dropped to the broker's dead-letter handling.
func (r *RabbitMQ) Consume(ctx context.Context, handler BatchHandler) error {
	if err := r.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := r.channel.Consume(
		r.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	r.logger.Info("consuming batches", "queue", r.queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			r.handleDelivery(ctx, handler, delivery)
		}
	}
}

func (r *RabbitMQ) handleDelivery(ctx context.Context, handler BatchHandler, delivery amqp.Delivery) {
	var msg domain.BatchMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		r.logger.Error("dropping undecodable batch message", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler.HandleBatch(ctx, &msg); err != nil {
		requeue := !delivery.Redelivered
		r.logger.Error("batch failed",
			"message_id", msg.MessageID,
			"requeue", requeue,
			"error", err,
		)
		_ = delivery.Nack(false, requeue)
		return
	}

	_ = delivery.Ack(false)
}
