// Package messaging publishes import events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"question-bank/internal/config"
	"question-bank/internal/domain"
	"question-bank/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher implements domain.EventPublisher on a topic exchange.
// The event type is the routing key.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewRabbitMQPublisher dials cfg.URL and declares the exchange. An empty URL
// yields a NoopPublisher.
func NewRabbitMQPublisher(cfg config.RabbitMQConfig) (domain.EventPublisher, error) {
	if cfg.URL == "" {
		logger.Get().Warn("RabbitMQ URL is empty, event publishing is disabled")
		return NoopPublisher{}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return newPublisher(conn, ch, cfg.Exchange), nil
}

func newPublisher(conn *amqp.Connection, ch channel, exchange string) *RabbitMQPublisher {
	return &RabbitMQPublisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}
}

// Publish sends payload as a persistent JSON message.
func (p *RabbitMQPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Type:         eventType,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	logger.Get().Debug("Published event",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", eventType),
		zap.Int("bytes", len(body)))
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	var firstErr error
	if p.ch != nil {
		firstErr = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }
