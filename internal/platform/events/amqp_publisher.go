package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes events to durable RabbitMQ queues. A connection is
// dialed per publish so a broker restart never wedges the API process.
type AMQPPublisher struct {
	url    string
	logger *slog.Logger
}

// NewAMQPPublisher creates a publisher for the given broker URL.
func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, logger: logger}
}

var _ Publisher = (*AMQPPublisher)(nil)

func (p *AMQPPublisher) PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error {
	return p.publish(ctx, QueueStatusChanged, event)
}

func (p *AMQPPublisher) PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error {
	return p.publish(ctx, QueuePaymentRecorded, event)
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, event any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Error("rabbitmq dial failed", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error("rabbitmq channel open failed", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.logger.Error("rabbitmq queue declare failed", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("event marshal failed", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		p.logger.Error("rabbitmq publish failed", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}
	return nil
}
